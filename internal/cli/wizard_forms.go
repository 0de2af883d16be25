package cli

import (
	"errors"
	"strings"

	"github.com/acamargo/studia/internal/domain"
	"github.com/charmbracelet/huh"
)

func validateCourseName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("enter a topic for the course")
	}
	return nil
}

// topicForm collects the course topic.
func topicForm(topic *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("What do you want to learn?").
				Placeholder("e.g. Spanish for travel").
				Value(topic).
				Validate(validateCourseName),
		),
	).WithTheme(studiaHuhTheme()).WithShowHelp(false)
}

// levelForm collects the current knowledge level.
func levelForm(level *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How familiar are you with it?").
				Options(
					huh.NewOption("Just starting out", string(domain.LevelBeginner)),
					huh.NewOption("Know the basics", string(domain.LevelIntermediate)),
					huh.NewOption("Quite experienced", string(domain.LevelAdvanced)),
				).
				Value(level),
		),
	).WithTheme(studiaHuhTheme()).WithShowHelp(false)
}

// paceForm collects the intended study pace.
func paceForm(pace *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How much time can you put in?").
				Options(
					huh.NewOption("A little here and there", string(domain.PaceLight)),
					huh.NewOption("A few hours a week", string(domain.PaceModerate)),
					huh.NewOption("As much as it takes", string(domain.PaceIntensive)),
				).
				Value(pace),
		),
	).WithTheme(studiaHuhTheme()).WithShowHelp(false)
}

// goalForm collects the learning goal plus optional free-form notes.
func goalForm(goal, info *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Why are you learning this?").
				Options(
					huh.NewOption("Career growth", string(domain.GoalCareer)),
					huh.NewOption("Personal interest", string(domain.GoalPersonal)),
					huh.NewOption("Academic studies", string(domain.GoalAcademic)),
					huh.NewOption("Certification", string(domain.GoalCertification)),
				).
				Value(goal),
			huh.NewInput().
				Title("Anything else we should know?").
				Placeholder("optional").
				Value(info),
		),
	).WithTheme(studiaHuhTheme()).WithShowHelp(false)
}
