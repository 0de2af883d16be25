package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewDashboard ViewID = iota
	ViewWizard
	ViewGenerating
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// viewCapturesInput reports whether the view takes all key input,
// bypassing the global q/esc handling. The wizard needs every character
// for its text fields and the generating view owns esc for detach.
func viewCapturesInput(v View) bool {
	return v.ID() == ViewWizard || v.ID() == ViewGenerating
}
