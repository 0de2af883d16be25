package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/acamargo/studia/internal/db"
	"github.com/acamargo/studia/internal/domain"
)

// SQLiteUserProfileRepo implements UserProfileRepo using a SQLite database.
// A single profile row with id 'default' is maintained.
type SQLiteUserProfileRepo struct {
	db db.DBTX
}

// NewSQLiteUserProfileRepo creates a new SQLiteUserProfileRepo.
func NewSQLiteUserProfileRepo(conn db.DBTX) *SQLiteUserProfileRepo {
	return &SQLiteUserProfileRepo{db: conn}
}

func (r *SQLiteUserProfileRepo) Get(ctx context.Context) (*domain.UserProfile, error) {
	query := `SELECT id, display_name, default_knowledge_level, default_study_pace, last_course_id
		FROM user_profile WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.UserProfile
	var level, pace string
	err := row.Scan(&p.ID, &p.DisplayName, &level, &pace, &p.LastCourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user profile: %w", err)
	}
	p.DefaultKnowledgeLevel = domain.KnowledgeLevel(level)
	p.DefaultStudyPace = domain.StudyPace(pace)
	return &p, nil
}

func (r *SQLiteUserProfileRepo) Upsert(ctx context.Context, p *domain.UserProfile) error {
	if p.ID == "" {
		p.ID = "default"
	}
	query := `INSERT OR REPLACE INTO user_profile
		(id, display_name, default_knowledge_level, default_study_pace, last_course_id)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.DisplayName,
		string(p.DefaultKnowledgeLevel),
		string(p.DefaultStudyPace),
		p.LastCourseID,
	)
	if err != nil {
		return fmt.Errorf("upserting user profile: %w", err)
	}
	return nil
}
