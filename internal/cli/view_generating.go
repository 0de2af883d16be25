package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/acamargo/studia/internal/cli/formatter"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/progress"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// refreshRate is how often the generating view re-reads the tracker.
const refreshRate = 200 * time.Millisecond

// generationTickMsg drives the periodic re-render while generation runs.
type generationTickMsg struct{}

// generationErrMsg reports a tracker start failure.
type generationErrMsg struct{ err error }

// generationOutcome is pushed by the tracker's terminal callbacks.
type generationOutcome struct{ failed bool }

// generatingView shows one course's live generation: reconciled progress,
// the status message window and discovered sources. It owns the tracker
// for the session and stops it when the user leaves.
type generatingView struct {
	state   *SharedState
	course  *domain.Course
	tracker *progress.Tracker
	cancel  context.CancelFunc
	err     error

	// outcomeCh receives the one-shot terminal action from the tracker's
	// controller; ticks drain it.
	outcomeCh chan generationOutcome
	outcome   *generationOutcome
}

func newGeneratingView(state *SharedState, course *domain.Course) *generatingView {
	v := &generatingView{
		state:     state,
		course:    course,
		outcomeCh: make(chan generationOutcome, 1),
	}

	tracker, err := progress.NewTracker(progress.TrackerConfig{
		CourseID: course.ID,
		Status:   state.App.Backend,
		Feed:     state.App.Feed,
		OnCompleted: func() {
			select {
			case v.outcomeCh <- generationOutcome{}:
			default:
			}
		},
		OnFailed: func() {
			select {
			case v.outcomeCh <- generationOutcome{failed: true}:
			default:
			}
		},
	})
	if err != nil {
		v.err = err
		return v
	}
	v.tracker = tracker
	return v
}

func (v *generatingView) ID() ViewID    { return ViewGenerating }
func (v *generatingView) Title() string { return "Generating" }

func (v *generatingView) ShortHelp() []key.Binding {
	if v.outcome != nil {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "back to dashboard")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *generatingView) Init() tea.Cmd {
	if v.err != nil {
		return nil
	}
	return tea.Batch(v.start(), tick())
}

func (v *generatingView) start() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		v.cancel = cancel
		if err := v.tracker.Start(ctx); err != nil {
			return generationErrMsg{err: err}
		}
		return nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshRate, func(time.Time) tea.Msg {
		return generationTickMsg{}
	})
}

// teardown releases the tracker and its subscriptions.
func (v *generatingView) teardown() {
	if v.cancel != nil {
		v.cancel()
	}
	if v.tracker != nil {
		v.tracker.Stop()
	}
}

// persistOutcome writes the terminal course status back to the store.
func (v *generatingView) persistOutcome(out generationOutcome) tea.Cmd {
	app := v.state.App
	id := v.course.ID
	return func() tea.Msg {
		status := domain.CourseReady
		pct := 100
		if out.failed {
			status = domain.CourseFailed
			pct = int(v.tracker.Snapshot().Progress)
		}
		if err := app.Courses.UpdateProgress(context.Background(), id, status, pct); err != nil {
			return generationErrMsg{err: err}
		}
		return refreshViewMsg{}
	}
}

func (v *generatingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generationErrMsg:
		v.err = msg.err
		return v, nil

	case generationTickMsg:
		if v.outcome != nil {
			return v, nil
		}
		select {
		case out := <-v.outcomeCh:
			v.outcome = &out
			return v, v.persistOutcome(out)
		default:
		}
		return v, tick()

	case tea.KeyMsg:
		if v.outcome != nil || v.err != nil {
			if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
				v.teardown()
				v.state.ClearActiveCourse()
				return v, tea.Batch(popView(), refreshViews())
			}
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			v.teardown()
			v.state.ClearActiveCourse()
			return v, tea.Batch(popView(), refreshViews())
		}
	}
	return v, nil
}

func (v *generatingView) View() string {
	if v.err != nil {
		return formatter.StyleRed.Render("  " + v.err.Error())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n\n", formatter.Bold(v.course.Name))
	b.WriteString(formatter.RenderGenerationStatus(v.tracker.Snapshot()))
	b.WriteString("\n\n")
	b.WriteString(formatter.RenderMessages(v.tracker.Messages()))

	if ev := formatter.RenderEvidence(v.tracker.Evidence()); ev != "" {
		b.WriteString("\n\n")
		b.WriteString(ev)
	}

	if !v.tracker.Connected() {
		b.WriteString("\n\n")
		b.WriteString(formatter.Dim("  ○ live updates offline, polling only"))
	}

	if v.outcome != nil {
		b.WriteString("\n\n")
		if v.outcome.failed {
			b.WriteString(formatter.StyleRed.Render("  Generation failed."))
		} else {
			b.WriteString(formatter.StyleGreen.Render("  Course is ready!"))
		}
		b.WriteString("\n" + formatter.Dim("  Press enter to return to the dashboard."))
	}

	return b.String()
}
