package service

import (
	"context"

	"github.com/acamargo/studia/internal/creation"
	"github.com/acamargo/studia/internal/domain"
)

type CourseService interface {
	Create(ctx context.Context, c *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Course, error)
	Update(ctx context.Context, c *domain.Course) error
	UpdateProgress(ctx context.Context, id string, status domain.CourseStatus, progress int) error
	Delete(ctx context.Context, id string) error
}

type CreationService interface {
	// Launch persists the wizard answers as a course and asks the backend
	// to generate it. If the backend refuses the trigger, the course stays
	// in draft and the returned error lets the caller retry.
	Launch(ctx context.Context, st creation.State) (*domain.Course, error)
}
