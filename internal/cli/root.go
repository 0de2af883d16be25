package cli

import (
	"errors"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/realtime"
	"github.com/acamargo/studia/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Courses  service.CourseService
	Creation service.CreationService
	Backend  backend.Client
	Feed     realtime.Feed

	// IsInteractive reports whether stdin is a terminal. The TUI only
	// starts on a real terminal.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studia" command and registers all
// subcommands against the provided App. Running it with no subcommand
// starts the TUI.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "studia",
		Short:        "Course creation and learning dashboard",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive == nil || !app.IsInteractive() {
				return errors.New("the dashboard needs an interactive terminal; run 'studia --help' for commands")
			}
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, err := p.Run()
			return err
		},
	}

	root.AddCommand(
		newCreateCmd(app),
		newCoursesCmd(app),
		newStatusCmd(app),
	)

	return root
}
