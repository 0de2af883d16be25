package testutil

import (
	"time"

	"github.com/acamargo/studia/internal/domain"
	"github.com/google/uuid"
)

// CourseOption mutates a fixture course.
type CourseOption func(*domain.Course)

func WithCourseStatus(s domain.CourseStatus) CourseOption {
	return func(c *domain.Course) {
		c.Status = s
	}
}

func WithCourseProgress(p int) CourseOption {
	return func(c *domain.Course) {
		c.Progress = p
	}
}

func WithUserID(id string) CourseOption {
	return func(c *domain.Course) {
		c.UserID = id
	}
}

// NewTestCourse creates a valid course fixture with the given name.
func NewTestCourse(name string, opts ...CourseOption) *domain.Course {
	now := time.Now().UTC()
	c := &domain.Course{
		ID:             uuid.NewString(),
		UserID:         "user-test",
		Name:           name,
		KnowledgeLevel: domain.LevelBeginner,
		StudyPace:      domain.PaceModerate,
		Goal:           domain.GoalPersonal,
		Status:         domain.CourseDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
