package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acamargo/studia/internal/cli/formatter"
	"github.com/acamargo/studia/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// coursesLoadedMsg signals that the course list has been loaded.
type coursesLoadedMsg struct {
	courses []*domain.Course
	err     error
}

// dashboardView is the home screen: the user's courses with their
// generation state, plus entry points into the wizard and the live
// generation view.
type dashboardView struct {
	state   *SharedState
	courses []*domain.Course
	loading bool
	err     error

	cursor     int
	showDetail bool
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state, loading: true}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new course")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd {
	return v.loadData()
}

func (v *dashboardView) loadData() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

func (v *dashboardView) selected() *domain.Course {
	if v.cursor < 0 || v.cursor >= len(v.courses) {
		return nil
	}
	return v.courses[v.cursor]
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case coursesLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.courses = msg.courses
		if v.cursor >= len(v.courses) {
			v.cursor = max(len(v.courses)-1, 0)
		}
		return v, nil

	case refreshViewMsg:
		return v, v.loadData()

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(v.courses)-1 {
				v.cursor++
			}
		case "n":
			return v, pushView(newWizardView(v.state))
		case "r":
			v.loading = true
			return v, v.loadData()
		case "x":
			if c := v.selected(); c != nil {
				return v, v.deleteCourse(c.ID)
			}
		case "enter":
			if c := v.selected(); c != nil {
				if c.Status == domain.CourseGenerating {
					v.state.SetActiveCourse(c.ID, c.Name)
					return v, pushView(newGeneratingView(v.state, c))
				}
				v.showDetail = !v.showDetail
			}
		}
	}
	return v, nil
}

func (v *dashboardView) deleteCourse(id string) tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		if err := app.Courses.Delete(context.Background(), id); err != nil {
			return coursesLoadedMsg{err: err}
		}
		courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

func (v *dashboardView) View() string {
	if v.loading {
		return formatter.Dim("  Loading…")
	}
	if v.err != nil {
		return formatter.StyleRed.Render("  " + v.err.Error())
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Courses"))
	b.WriteString("\n")

	if len(v.courses) == 0 {
		b.WriteString(formatter.RenderCourseList(nil, time.Now()))
		return b.String()
	}

	now := time.Now()
	for i, c := range v.courses {
		marker := "  "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
		}
		fmt.Fprintf(&b, "%s%s  %-32s %-14s %s\n",
			marker,
			formatter.Dim(c.DisplayID()),
			formatter.Truncate(c.Name, 32),
			formatter.StatusIndicator(c.Status),
			formatter.Dim(formatter.RelativeDateFrom(c.CreatedAt, now)),
		)
		if c.Status == domain.CourseGenerating {
			fmt.Fprintf(&b, "             %s\n", formatter.RenderProgress(float64(c.Progress)/100, 24))
		}
	}

	if v.showDetail {
		if c := v.selected(); c != nil {
			b.WriteString("\n")
			b.WriteString(formatter.RenderCourseDetail(c))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
