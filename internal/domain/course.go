package domain

import (
	"fmt"
	"strings"
	"time"
)

type Course struct {
	ID             string
	UserID         string
	Name           string
	KnowledgeLevel KnowledgeLevel
	StudyPace      StudyPace
	Goal           Goal
	AdditionalInfo string
	Status         CourseStatus
	Progress       int // last reconciled generation progress, 0..100
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the fields collected by the creation wizard.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("course name is required")
	}
	if !ValidKnowledgeLevels[string(c.KnowledgeLevel)] {
		return fmt.Errorf("unknown knowledge level %q", c.KnowledgeLevel)
	}
	if !ValidStudyPaces[string(c.StudyPace)] {
		return fmt.Errorf("unknown study pace %q", c.StudyPace)
	}
	if !ValidGoals[string(c.Goal)] {
		return fmt.Errorf("unknown goal %q", c.Goal)
	}
	return nil
}

// DisplayID returns a short identifier for display, truncating the UUID.
func (c *Course) DisplayID() string {
	if len(c.ID) >= 8 {
		return c.ID[:8]
	}
	return c.ID
}
