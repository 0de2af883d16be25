package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/acamargo/studia/internal/cli/formatter"
	"github.com/acamargo/studia/internal/creation"
	"github.com/acamargo/studia/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// launchResultMsg carries the outcome of the creation launch call.
type launchResultMsg struct {
	course *domain.Course
	err    error
}

// wizardView walks the user through the five course-creation steps.
// All answers live in a creation.Store; the view only owns the huh form
// for the step currently on screen.
type wizardView struct {
	state *SharedState
	store *creation.Store
	form  *huh.Form

	// scratch values bound to the current form's fields
	topic, level, pace, goal, info string

	launching bool
	errText   string
}

func newWizardView(state *SharedState) *wizardView {
	v := &wizardView{
		state: state,
		store: creation.NewStore(),
	}
	v.buildForm()
	return v
}

func (v *wizardView) ID() ViewID    { return ViewWizard }
func (v *wizardView) Title() string { return "New Course" }

func (v *wizardView) ShortHelp() []key.Binding {
	st := v.store.GetState()
	if st.Step == creation.StepReview {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *wizardView) Init() tea.Cmd {
	if v.form != nil {
		return v.form.Init()
	}
	return nil
}

// buildForm creates the huh form for the store's current step, prefilled
// with earlier answers so going back preserves them.
func (v *wizardView) buildForm() {
	st := v.store.GetState()
	v.topic = st.CourseName
	v.level = string(st.KnowledgeLevel)
	v.pace = string(st.StudyPace)
	v.goal = string(st.Goal)
	v.info = st.AdditionalInfo

	switch st.Step {
	case creation.StepTopic:
		v.form = topicForm(&v.topic)
	case creation.StepKnowledgeLevel:
		v.form = levelForm(&v.level)
	case creation.StepStudyPace:
		v.form = paceForm(&v.pace)
	case creation.StepGoal:
		v.form = goalForm(&v.goal, &v.info)
	default:
		// Review step renders its own summary.
		v.form = nil
	}
}

// commitStep dispatches the current form's answers and advances the wizard.
func (v *wizardView) commitStep() tea.Cmd {
	st := v.store.GetState()
	switch st.Step {
	case creation.StepTopic:
		v.store.Dispatch(creation.Transition{Kind: creation.SetCourseName, Value: strings.TrimSpace(v.topic)})
	case creation.StepKnowledgeLevel:
		v.store.Dispatch(creation.Transition{Kind: creation.SetKnowledgeLevel, Value: v.level})
	case creation.StepStudyPace:
		v.store.Dispatch(creation.Transition{Kind: creation.SetStudyPace, Value: v.pace})
	case creation.StepGoal:
		v.store.Dispatch(creation.Transition{Kind: creation.SetGoal, Value: v.goal})
		v.store.Dispatch(creation.Transition{Kind: creation.SetAdditionalInfo, Value: v.info})
	}
	v.store.Dispatch(creation.Transition{Kind: creation.NextStep})
	v.buildForm()
	return v.Init()
}

// stepBack returns to the previous step, or leaves the wizard on step one.
func (v *wizardView) stepBack() tea.Cmd {
	st := v.store.GetState()
	if st.Step == creation.MinStep {
		return popView()
	}
	v.store.Dispatch(creation.Transition{Kind: creation.PreviousStep})
	v.buildForm()
	return v.Init()
}

func (v *wizardView) launch() tea.Cmd {
	v.launching = true
	v.errText = ""
	app := v.state.App
	st := v.store.GetState()
	st.UserID = DefaultUserID
	return func() tea.Msg {
		course, err := app.Creation.Launch(context.Background(), st)
		return launchResultMsg{course: course, err: err}
	}
}

func (v *wizardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case launchResultMsg:
		v.launching = false
		if msg.course != nil {
			// Keep the assigned ID so a retry reuses the same course.
			v.store.Dispatch(creation.Transition{Kind: creation.SetCourseID, Value: msg.course.ID})
		}
		if msg.err != nil {
			v.errText = msg.err.Error()
			return v, nil
		}
		v.store.Dispatch(creation.Transition{Kind: creation.CompleteCreation})
		v.state.SetActiveCourse(msg.course.ID, msg.course.Name)
		return v, tea.Batch(replaceView(newGeneratingView(v.state, msg.course)), refreshViews())

	case tea.KeyMsg:
		if v.launching {
			return v, nil
		}
		if msg.Type == tea.KeyEsc {
			return v, v.stepBack()
		}
		if v.store.GetState().Step == creation.StepReview {
			if msg.Type == tea.KeyEnter {
				return v, v.launch()
			}
			return v, nil
		}
	}

	if v.form == nil {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		return v, v.commitStep()
	}
	return v, cmd
}

func (v *wizardView) View() string {
	st := v.store.GetState()

	header := formatter.Dim(fmt.Sprintf("Step %d of %d", st.Step, creation.MaxStep))

	if st.Step == creation.StepReview {
		return header + "\n\n" + v.renderReview(st)
	}
	if v.form == nil {
		return header
	}
	return header + "\n\n" + v.form.View()
}

func (v *wizardView) renderReview(st creation.State) string {
	rows := []struct{ label, value string }{
		{"Topic", formatter.Bold(st.CourseName)},
		{"Level", string(st.KnowledgeLevel)},
		{"Pace", string(st.StudyPace)},
		{"Goal", string(st.Goal)},
	}
	var b strings.Builder
	b.WriteString(formatter.Header("Review"))
	b.WriteString("\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim(fmt.Sprintf("%-6s", r.label)), r.value)
	}
	if st.AdditionalInfo != "" {
		fmt.Fprintf(&b, "  %s %s\n", formatter.Dim(fmt.Sprintf("%-6s", "Notes")), st.AdditionalInfo)
	}
	b.WriteString("\n")
	switch {
	case v.launching:
		b.WriteString(formatter.Dim("  Creating course…"))
	case v.errText != "":
		b.WriteString(formatter.StyleRed.Render("  " + v.errText))
		b.WriteString("\n" + formatter.Dim("  Press enter to try again."))
	default:
		b.WriteString(formatter.Dim("  Press enter to create the course."))
	}
	return b.String()
}
