package domain

// UserProfile holds per-user defaults used to pre-fill the creation wizard.
type UserProfile struct {
	ID                    string
	DisplayName           string
	DefaultKnowledgeLevel KnowledgeLevel
	DefaultStudyPace      StudyPace
	LastCourseID          string
}
