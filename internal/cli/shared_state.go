package cli

// DefaultUserID is the single local user every course belongs to.
const DefaultUserID = "default"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active course context
	ActiveCourseID   string
	ActiveCourseName string

	// Terminal dimensions
	Width  int
	Height int
}

// SetActiveCourse sets the course context shown in the header.
func (s *SharedState) SetActiveCourse(id, name string) {
	s.ActiveCourseID = id
	s.ActiveCourseName = name
}

// ClearActiveCourse resets the course context.
func (s *SharedState) ClearActiveCourse() {
	s.ActiveCourseID = ""
	s.ActiveCourseName = ""
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
