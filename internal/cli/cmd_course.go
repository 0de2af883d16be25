package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/acamargo/studia/internal/cli/formatter"
	"github.com/acamargo/studia/internal/creation"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/progress"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// enumValue is a pflag.Value restricted to a fixed set of strings.
type enumValue struct {
	value   *string
	allowed map[string]bool
}

func newEnumValue(def string, allowed map[string]bool, p *string) *enumValue {
	*p = def
	return &enumValue{value: p, allowed: allowed}
}

func (e *enumValue) String() string { return *e.value }
func (e *enumValue) Type() string   { return "string" }

func (e *enumValue) Set(s string) error {
	if !e.allowed[s] {
		return fmt.Errorf("invalid value %q", s)
	}
	*e.value = s
	return nil
}

var _ pflag.Value = (*enumValue)(nil)

// newCreateCmd builds "studia create": a non-interactive course creation
// that feeds the flag values through the same wizard transitions the TUI
// uses, then launches generation.
func newCreateCmd(app *App) *cobra.Command {
	var (
		name  string
		level string
		pace  string
		goal  string
		info  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a course and start generation",
		RunE: func(cmd *cobra.Command, args []string) error {
			store := creation.NewStore()
			store.Dispatch(creation.Transition{Kind: creation.SetCourseName, Value: name})
			store.Dispatch(creation.Transition{Kind: creation.SetKnowledgeLevel, Value: level})
			store.Dispatch(creation.Transition{Kind: creation.SetStudyPace, Value: pace})
			store.Dispatch(creation.Transition{Kind: creation.SetGoal, Value: goal})
			store.Dispatch(creation.Transition{Kind: creation.SetAdditionalInfo, Value: info})
			store.Dispatch(creation.Transition{Kind: creation.SetUserID, Value: DefaultUserID})

			st := store.GetState()
			stop := formatter.StartSpinner("Creating course…")
			course, err := app.Creation.Launch(cmd.Context(), st)
			stop()
			if err != nil {
				return err
			}
			store.Dispatch(creation.Transition{Kind: creation.SetCourseID, Value: course.ID})
			store.Dispatch(creation.Transition{Kind: creation.CompleteCreation})

			fmt.Fprintf(cmd.OutOrStdout(), "Created course %s (%s)\n", formatter.Bold(course.Name), course.DisplayID())
			if !watch {
				fmt.Fprintf(cmd.OutOrStdout(), "Run 'studia status %s' to follow generation.\n", course.DisplayID())
				return nil
			}
			return watchGeneration(cmd, app, course.ID)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "course topic (required)")
	cmd.Flags().Var(newEnumValue("beginner", domain.ValidKnowledgeLevels, &level), "level", "knowledge level: beginner, intermediate, advanced")
	cmd.Flags().Var(newEnumValue("moderate", domain.ValidStudyPaces, &pace), "pace", "study pace: light, moderate, intensive")
	cmd.Flags().Var(newEnumValue("personal_interest", domain.ValidGoals, &goal), "goal", "goal: career_growth, personal_interest, academic, certification")
	cmd.Flags().StringVar(&info, "info", "", "additional context for the course")
	cmd.Flags().BoolVar(&watch, "watch", false, "follow generation progress until it finishes")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// watchGeneration follows one course's generation on stdout until it
// reaches a terminal state.
func watchGeneration(cmd *cobra.Command, app *App, courseID string) error {
	done := make(chan struct{}, 1)
	signal := func() {
		select {
		case done <- struct{}{}:
		default:
		}
	}

	tracker, err := progress.NewTracker(progress.TrackerConfig{
		CourseID:    courseID,
		Status:      app.Backend,
		Feed:        app.Feed,
		OnCompleted: signal,
		OnFailed:    signal,
	})
	if err != nil {
		return err
	}
	defer tracker.Stop()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	if err := tracker.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(progress.PollInterval)
	defer ticker.Stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			snap := tracker.Snapshot()
			if snap.Failed {
				return fmt.Errorf("generation failed at %.0f%%", snap.Progress)
			}
			fmt.Fprintln(out, formatter.StyleGreen.Render("Course is ready."))
			return nil
		case <-ticker.C:
			snap := tracker.Snapshot()
			fmt.Fprintf(out, "%s  %s\n",
				formatter.StageLabel(snap.Stage),
				formatter.RenderProgress(snap.Progress/100, 24))
		}
	}
}

// newCoursesCmd builds "studia courses" with list and removal.
func newCoursesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "courses",
		Short: "List your courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			courses, err := app.Courses.ListByUser(cmd.Context(), DefaultUserID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderCourseList(courses, time.Now()))
			return nil
		},
	}

	rm := &cobra.Command{
		Use:   "rm <course-id>",
		Short: "Delete a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCourseID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			return app.Courses.Delete(cmd.Context(), id)
		},
	}
	cmd.AddCommand(rm)

	return cmd
}

// newStatusCmd builds "studia status": a one-shot backend status check.
func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <course-id>",
		Short: "Show generation status for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveCourseID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}

			course, err := app.Courses.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.RenderCourseDetail(course))

			res, err := app.Backend.CheckStatus(cmd.Context(), id)
			if err != nil {
				return err
			}
			stage, _ := domain.ParseGenerationStage(res.Status)
			rec := progress.NewReconciler()
			rec.Observe(progress.Signal{
				Source:  progress.SourcePoll,
				Stage:   stage,
				Percent: &res.Progress,
				Message: res.Message,
			})
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.RenderGenerationStatus(rec.Snapshot()))
			return nil
		},
	}
}

// resolveCourseID accepts a full course ID or a display-ID prefix.
func resolveCourseID(ctx context.Context, app *App, arg string) (string, error) {
	courses, err := app.Courses.ListByUser(ctx, DefaultUserID)
	if err != nil {
		return "", err
	}
	for _, c := range courses {
		if c.ID == arg || c.DisplayID() == arg {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("no course matches %q", arg)
}
