package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/creation"
	"github.com/acamargo/studia/internal/db"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/repository"
	"github.com/google/uuid"
)

// ErrIncompleteWizard indicates Launch was called before every required
// wizard answer was filled in.
var ErrIncompleteWizard = errors.New("wizard answers incomplete")

type creationService struct {
	backend backend.Client
	uow     db.UnitOfWork
	courses repository.CourseRepo
}

func NewCreationService(client backend.Client, uow db.UnitOfWork, courses repository.CourseRepo) CreationService {
	return &creationService{backend: client, uow: uow, courses: courses}
}

// Launch persists the wizard answers and kicks off generation. The returned
// course is non-nil as soon as it has been persisted, even when the trigger
// call fails; callers keep its ID so a retry reuses the same course instead
// of creating a duplicate.
func (s *creationService) Launch(ctx context.Context, st creation.State) (*domain.Course, error) {
	if st.CourseName == "" || st.KnowledgeLevel == "" || st.StudyPace == "" || st.Goal == "" {
		return nil, ErrIncompleteWizard
	}

	course, err := s.ensureCourse(ctx, st)
	if err != nil {
		return nil, err
	}

	// Retries skip thread creation; the backend already holds the thread.
	if st.CourseID == "" {
		req := backend.CreateThreadRequest{
			CourseID:       course.ID,
			Topic:          course.Name,
			KnowledgeLevel: string(course.KnowledgeLevel),
		}
		if err := s.backend.CreateInitialThread(ctx, req); err != nil {
			return course, fmt.Errorf("create initial thread: %w", err)
		}
	}

	res, err := s.backend.TriggerGeneration(ctx, course.ID)
	if err != nil {
		return course, fmt.Errorf("trigger generation: %w", err)
	}
	if !res.Success {
		return course, fmt.Errorf("trigger generation: %w: %s", backend.ErrRejected, res.Message)
	}

	if err := s.courses.UpdateProgress(ctx, course.ID, domain.CourseGenerating, 0); err != nil {
		return course, err
	}
	course.Status = domain.CourseGenerating
	course.Progress = 0
	return course, nil
}

// ensureCourse loads the course from a previous attempt or persists a new
// draft, updating the user profile's last-course pointer in the same
// transaction.
func (s *creationService) ensureCourse(ctx context.Context, st creation.State) (*domain.Course, error) {
	if st.CourseID != "" {
		return s.courses.GetByID(ctx, st.CourseID)
	}

	course := &domain.Course{
		ID:             uuid.New().String(),
		UserID:         st.UserID,
		Name:           st.CourseName,
		KnowledgeLevel: st.KnowledgeLevel,
		StudyPace:      st.StudyPace,
		Goal:           st.Goal,
		AdditionalInfo: st.AdditionalInfo,
		Status:         domain.CourseDraft,
	}
	if err := course.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txCourses := repository.NewSQLiteCourseRepo(tx)
		txProfiles := repository.NewSQLiteUserProfileRepo(tx)

		svc := &courseService{courses: txCourses}
		if err := svc.Create(ctx, course); err != nil {
			return err
		}

		profile, err := txProfiles.Get(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			profile = &domain.UserProfile{
				DefaultKnowledgeLevel: course.KnowledgeLevel,
				DefaultStudyPace:      course.StudyPace,
			}
		} else if err != nil {
			return err
		}
		profile.LastCourseID = course.ID
		return txProfiles.Upsert(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return course, nil
}
