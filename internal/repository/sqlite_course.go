package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/acamargo/studia/internal/db"
	"github.com/acamargo/studia/internal/domain"
)

// SQLiteCourseRepo implements CourseRepo using a SQLite database.
type SQLiteCourseRepo struct {
	db db.DBTX
}

// NewSQLiteCourseRepo creates a new SQLiteCourseRepo.
func NewSQLiteCourseRepo(conn db.DBTX) *SQLiteCourseRepo {
	return &SQLiteCourseRepo{db: conn}
}

const courseColumns = `id, user_id, name, knowledge_level, study_pace, goal,
	additional_info, status, progress, created_at, updated_at`

func (r *SQLiteCourseRepo) Create(ctx context.Context, c *domain.Course) error {
	query := `INSERT INTO courses (` + courseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		string(c.KnowledgeLevel),
		string(c.StudyPace),
		string(c.Goal),
		c.AdditionalInfo,
		string(c.Status),
		c.Progress,
		c.CreatedAt.Format(time.RFC3339),
		c.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting course: %w", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = ?`
	return r.scanCourse(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteCourseRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE user_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*domain.Course
	for rows.Next() {
		c, err := r.scanCourseFromRows(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating courses: %w", err)
	}
	return courses, nil
}

func (r *SQLiteCourseRepo) Update(ctx context.Context, c *domain.Course) error {
	query := `UPDATE courses SET name = ?, knowledge_level = ?, study_pace = ?, goal = ?,
		additional_info = ?, status = ?, progress = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		c.Name,
		string(c.KnowledgeLevel),
		string(c.StudyPace),
		string(c.Goal),
		c.AdditionalInfo,
		string(c.Status),
		c.Progress,
		c.UpdatedAt.Format(time.RFC3339),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating course: %w", err)
	}
	return nil
}

func (r *SQLiteCourseRepo) UpdateProgress(ctx context.Context, id string, status domain.CourseStatus, progress int) error {
	query := `UPDATE courses SET status = ?, progress = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, string(status), progress, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating course progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("course %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteCourseRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteCourseRepo) scanCourse(row *sql.Row) (*domain.Course, error) {
	c, err := scanCourseFields(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("course: %w", ErrNotFound)
	}
	return c, err
}

func (r *SQLiteCourseRepo) scanCourseFromRows(rows *sql.Rows) (*domain.Course, error) {
	return scanCourseFields(rows)
}

func scanCourseFields(s rowScanner) (*domain.Course, error) {
	var c domain.Course
	var level, pace, goal, status, createdAt, updatedAt string
	err := s.Scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&level,
		&pace,
		&goal,
		&c.AdditionalInfo,
		&status,
		&c.Progress,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	c.KnowledgeLevel = domain.KnowledgeLevel(level)
	c.StudyPace = domain.StudyPace(pace)
	c.Goal = domain.Goal(goal)
	c.Status = domain.CourseStatus(status)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	c.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &c, nil
}
