package formatter

import (
	"fmt"
	"strings"

	"github.com/acamargo/studia/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the lipgloss style for a course status.
func StatusColor(status domain.CourseStatus) lipgloss.Style {
	switch status {
	case domain.CourseReady:
		return StyleGreen
	case domain.CourseGenerating:
		return StyleYellow
	case domain.CourseFailed:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status marker such as "● READY".
func StatusIndicator(status domain.CourseStatus) string {
	switch status {
	case domain.CourseReady:
		return StyleGreen.Render("● READY")
	case domain.CourseGenerating:
		return StyleYellow.Render("◐ GENERATING")
	case domain.CourseFailed:
		return StyleRed.Render("● FAILED")
	default:
		return StyleDim.Render("○ DRAFT")
	}
}

// StageLabel returns a human-readable label for a generation stage.
func StageLabel(stage domain.GenerationStage) string {
	switch stage {
	case domain.StagePreparing:
		return "Preparing"
	case domain.StageResearching:
		return "Researching"
	case domain.StageAnalyzing:
		return "Analyzing"
	case domain.StageCompleted:
		return "Completed"
	case domain.StageFailed:
		return "Failed"
	default:
		return string(stage)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
