package cli

import (
	"context"
	"testing"
	"time"

	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/realtime"
	"github.com/acamargo/studia/internal/teatest"
	"github.com/acamargo/studia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func newGeneratingDriver(t *testing.T, app *App, course *domain.Course) (*teatest.Driver, *generatingView) {
	t.Helper()
	state := &SharedState{App: app}
	v := newGeneratingView(state, course)
	require.NoError(t, v.err)
	d := teatest.New(t, v, teatest.WithSize(120, 40))
	d.DrainInit()
	t.Cleanup(v.teardown)
	return d, v
}

func TestGeneratingView_JoinsCourseAndRendersPushUpdates(t *testing.T) {
	app, _, feed := testApp(t)
	course := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating))

	d, v := newGeneratingDriver(t, app, course)

	feed.mu.Lock()
	joins := append([]string(nil), feed.joins...)
	feed.mu.Unlock()
	assert.Contains(t, joins, course.ID)

	pct := 42.0
	feed.bus.PublishResearchUpdate(realtime.ResearchUpdate{
		Status:      "researching",
		Progress:    &pct,
		Message:     "Scanning the archives",
		CurrentStep: "Collecting sources",
	})
	waitFor(t, func() bool { return v.tracker.Snapshot().Progress == 42 })

	d.Send(generationTickMsg{})
	view := d.Model.(*generatingView).View()
	assert.Contains(t, view, "Scanning the archives")
	assert.Contains(t, view, "Collecting sources")
	assert.Contains(t, view, " 42%")
	assert.Contains(t, view, "step 5/10")
}

func TestGeneratingView_ShowsEvidence(t *testing.T) {
	app, _, feed := testApp(t)
	course := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating))

	d, v := newGeneratingDriver(t, app, course)

	feed.bus.PublishSourceFound(realtime.SourceFound{
		Source: realtime.Source{Title: "Res Gestae", URL: "https://example.org/res-gestae", Domain: "example.org"},
	})
	waitFor(t, func() bool { return len(v.tracker.Evidence()) == 1 })

	d.Send(generationTickMsg{})
	view := d.Model.(*generatingView).View()
	assert.Contains(t, view, "Res Gestae")
	assert.Contains(t, view, "example.org")
}

func TestGeneratingView_CompletionPersistsCourse(t *testing.T) {
	app, _, _ := testApp(t)
	course := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating))

	d, v := newGeneratingDriver(t, app, course)

	// Deliver the terminal action directly, as the controller would after
	// its delay.
	v.outcomeCh <- generationOutcome{}
	d.Send(generationTickMsg{})

	view := d.Model.(*generatingView).View()
	assert.Contains(t, view, "Course is ready!")

	updated, err := app.Courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CourseReady, updated.Status)
	assert.Equal(t, 100, updated.Progress)
}

func TestGeneratingView_FailurePersistsCourse(t *testing.T) {
	app, _, _ := testApp(t)
	course := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating))

	d, v := newGeneratingDriver(t, app, course)

	v.outcomeCh <- generationOutcome{failed: true}
	d.Send(generationTickMsg{})

	view := d.Model.(*generatingView).View()
	assert.Contains(t, view, "Generation failed")

	updated, err := app.Courses.GetByID(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CourseFailed, updated.Status)
}

func TestGeneratingView_OfflineFeedShowsPollingNotice(t *testing.T) {
	app, _, feed := testApp(t)
	feed.mu.Lock()
	feed.connected = false
	feed.mu.Unlock()
	course := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating))

	d, _ := newGeneratingDriver(t, app, course)

	view := d.Model.(*generatingView).View()
	assert.Contains(t, view, "polling only")
}
