package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/acamargo/studia/internal/domain"
)

// RenderCourseList renders the dashboard course table.
func RenderCourseList(courses []*domain.Course, now time.Time) string {
	if len(courses) == 0 {
		return Dim("No courses yet. Press 'n' to create one.")
	}

	var b strings.Builder
	for _, c := range courses {
		line := fmt.Sprintf("  %s  %-32s %-14s %s",
			Dim(c.DisplayID()),
			Truncate(c.Name, 32),
			StatusIndicator(c.Status),
			Dim(RelativeDateFrom(c.CreatedAt, now)),
		)
		b.WriteString(line)
		b.WriteString("\n")
		if c.Status == domain.CourseGenerating {
			b.WriteString("           " + RenderProgress(float64(c.Progress)/100, 24) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderCourseDetail renders a single course's full record.
func RenderCourseDetail(c *domain.Course) string {
	rows := []struct{ label, value string }{
		{"Course", Bold(c.Name)},
		{"ID", Dim(c.ID)},
		{"Status", StatusIndicator(c.Status)},
		{"Level", string(c.KnowledgeLevel)},
		{"Pace", string(c.StudyPace)},
		{"Goal", string(c.Goal)},
	}
	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("%-8s", r.label)), r.value)
	}
	if c.AdditionalInfo != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("%-8s", "Notes")), c.AdditionalInfo)
	}
	if c.Status == domain.CourseGenerating {
		fmt.Fprintf(&b, "  %s %s\n", Dim(fmt.Sprintf("%-8s", "Progress")), RenderProgress(float64(c.Progress)/100, 24))
	}
	return strings.TrimRight(b.String(), "\n")
}
