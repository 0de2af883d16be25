// Package creation holds the course-creation wizard state: a pure reducer
// over named transitions plus an observable store container. It has no I/O
// and no UI dependency so the wizard logic is testable in isolation.
package creation

import "github.com/acamargo/studia/internal/domain"

const (
	// MinStep and MaxStep bound the wizard position.
	MinStep = 1
	MaxStep = 5
)

// Wizard step positions.
const (
	StepTopic = iota + 1
	StepKnowledgeLevel
	StepStudyPace
	StepGoal
	StepReview
)

// State is the accumulated wizard answer set for one course creation.
// The zero value is not the initial state; use Initial().
type State struct {
	Step           int
	CourseName     string
	KnowledgeLevel domain.KnowledgeLevel // empty = unset
	StudyPace      domain.StudyPace      // empty = unset
	Goal           domain.Goal           // empty = unset
	AdditionalInfo string
	UserID         string
	CourseID       string // assigned once the backend accepts the request
	Completed      bool
}

// Initial returns the wizard entry state.
func Initial() State {
	return State{Step: MinStep}
}

// TransitionKind names a reducer transition.
type TransitionKind string

const (
	SetCourseName     TransitionKind = "SET_COURSE_NAME"
	SetKnowledgeLevel TransitionKind = "SET_KNOWLEDGE_LEVEL"
	SetStudyPace      TransitionKind = "SET_STUDY_PACE"
	SetGoal           TransitionKind = "SET_GOALS"
	SetAdditionalInfo TransitionKind = "SET_ADDITIONAL_INFO"
	SetUserID         TransitionKind = "SET_USER_ID"
	SetCourseID       TransitionKind = "SET_COURSE_ID"
	NextStep          TransitionKind = "NEXT_STEP"
	PreviousStep      TransitionKind = "PREVIOUS_STEP"
	CompleteCreation  TransitionKind = "COMPLETE_CREATION"
	Reset             TransitionKind = "RESET"
)

// Transition is one named state change with an optional string payload.
type Transition struct {
	Kind  TransitionKind
	Value string
}

// Apply is the pure reducer: it returns the state after the transition.
// Unknown transition kinds return the state unchanged; Apply never panics
// and never mutates its input.
func Apply(s State, t Transition) State {
	switch t.Kind {
	case SetCourseName:
		s.CourseName = t.Value
	case SetKnowledgeLevel:
		if domain.ValidKnowledgeLevels[t.Value] {
			s.KnowledgeLevel = domain.KnowledgeLevel(t.Value)
		}
	case SetStudyPace:
		if domain.ValidStudyPaces[t.Value] {
			s.StudyPace = domain.StudyPace(t.Value)
		}
	case SetGoal:
		if domain.ValidGoals[t.Value] {
			s.Goal = domain.Goal(t.Value)
		}
	case SetAdditionalInfo:
		s.AdditionalInfo = t.Value
	case SetUserID:
		s.UserID = t.Value
	case SetCourseID:
		s.CourseID = t.Value
	case NextStep:
		if s.Step < MaxStep {
			s.Step++
		}
	case PreviousStep:
		if s.Step > MinStep {
			s.Step--
		}
	case CompleteCreation:
		s.Completed = true
	case Reset:
		return Initial()
	}
	return s
}

// CanAdvance reports whether the field required by the current step is set.
// Step 5 (review) has no blocking requirement.
func CanAdvance(s State) bool {
	switch s.Step {
	case StepTopic:
		return s.CourseName != ""
	case StepKnowledgeLevel:
		return s.KnowledgeLevel != ""
	case StepStudyPace:
		return s.StudyPace != ""
	case StepGoal:
		return s.Goal != ""
	default:
		return true
	}
}
