package domain

type KnowledgeLevel string

const (
	LevelBeginner     KnowledgeLevel = "beginner"
	LevelIntermediate KnowledgeLevel = "intermediate"
	LevelAdvanced     KnowledgeLevel = "advanced"
)

type StudyPace string

const (
	PaceLight     StudyPace = "light"
	PaceModerate  StudyPace = "moderate"
	PaceIntensive StudyPace = "intensive"
)

type Goal string

const (
	GoalCareer        Goal = "career_growth"
	GoalPersonal      Goal = "personal_interest"
	GoalAcademic      Goal = "academic"
	GoalCertification Goal = "certification"
)

type CourseStatus string

const (
	CourseDraft      CourseStatus = "draft"
	CourseGenerating CourseStatus = "generating"
	CourseReady      CourseStatus = "ready"
	CourseFailed     CourseStatus = "failed"
)

// GenerationStage is the status label reported by the generation backend
// and the realtime feed while a course is being built.
type GenerationStage string

const (
	StagePreparing   GenerationStage = "preparing"
	StageResearching GenerationStage = "researching"
	StageAnalyzing   GenerationStage = "analyzing"
	StageCompleted   GenerationStage = "completed"
	StageFailed      GenerationStage = "failed"
)

// ValidKnowledgeLevels is the canonical set of accepted knowledge level strings.
var ValidKnowledgeLevels = map[string]bool{
	"beginner": true, "intermediate": true, "advanced": true,
}

// ValidStudyPaces is the canonical set of accepted study pace strings.
var ValidStudyPaces = map[string]bool{
	"light": true, "moderate": true, "intensive": true,
}

// ValidGoals is the canonical set of accepted goal strings.
var ValidGoals = map[string]bool{
	"career_growth": true, "personal_interest": true,
	"academic": true, "certification": true,
}

// Terminal reports whether the stage admits no further transitions.
func (s GenerationStage) Terminal() bool {
	return s == StageCompleted || s == StageFailed
}

// ParseGenerationStage normalizes a backend status string into a stage.
// The status endpoint historically reports "preparation" where the realtime
// feed says "preparing"; both map to StagePreparing. Unknown strings return
// false so callers can treat them as "no update".
func ParseGenerationStage(s string) (GenerationStage, bool) {
	switch s {
	case "preparing", "preparation":
		return StagePreparing, true
	case "researching":
		return StageResearching, true
	case "analyzing":
		return StageAnalyzing, true
	case "completed":
		return StageCompleted, true
	case "failed":
		return StageFailed, true
	}
	return "", false
}
