// Package realtime delivers push events from the course-generation backend:
// research progress updates, discovered sources and completion notices.
// A websocket client feeds a multi-subscriber bus; consumers depend only on
// the Feed interface so tests can inject a fake.
package realtime

// ResearchUpdate is a progress/status push for a course under generation.
// Progress is nil when the producer omitted it.
type ResearchUpdate struct {
	Status      string   `json:"status"`
	Progress    *float64 `json:"progress"`
	Message     string   `json:"message"`
	CurrentStep string   `json:"current_step,omitempty"`
}

// Source describes one discovered reference.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

// SourceFound announces a source discovered during research.
type SourceFound struct {
	Source Source `json:"source"`
}

// ResearchCompleted announces that generation finished on the producer side.
type ResearchCompleted struct {
	CourseID string `json:"course_id"`
	Message  string `json:"message"`
}

// Feed is the push-event collaborator consumed by the progress tracker.
// Every Subscribe* returns an unsubscribe function; multiple subscribers
// per event are supported and unsubscribing twice is safe.
type Feed interface {
	// JoinCourse tells the producer which course's events to deliver.
	// It must be called once connected, and again after a reconnect.
	JoinCourse(courseID string) error

	Connected() bool

	SubscribeConnection(fn func(connected bool)) (unsubscribe func())
	SubscribeResearchUpdate(fn func(ResearchUpdate)) (unsubscribe func())
	SubscribeSourceFound(fn func(SourceFound)) (unsubscribe func())
	SubscribeResearchCompleted(fn func(ResearchCompleted)) (unsubscribe func())

	Close() error
}
