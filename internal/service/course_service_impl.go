package service

import (
	"context"
	"time"

	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/repository"
	"github.com/google/uuid"
)

type courseService struct {
	courses repository.CourseRepo
}

func NewCourseService(courses repository.CourseRepo) CourseService {
	return &courseService{courses: courses}
}

func (s *courseService) Create(ctx context.Context, c *domain.Course) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Status == "" {
		c.Status = domain.CourseDraft
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return s.courses.Create(ctx, c)
}

func (s *courseService) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	return s.courses.GetByID(ctx, id)
}

func (s *courseService) ListByUser(ctx context.Context, userID string) ([]*domain.Course, error) {
	return s.courses.ListByUser(ctx, userID)
}

func (s *courseService) Update(ctx context.Context, c *domain.Course) error {
	c.UpdatedAt = time.Now().UTC()
	if err := c.Validate(); err != nil {
		return err
	}
	return s.courses.Update(ctx, c)
}

func (s *courseService) UpdateProgress(ctx context.Context, id string, status domain.CourseStatus, progress int) error {
	return s.courses.UpdateProgress(ctx, id, status, progress)
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	return s.courses.Delete(ctx, id)
}
