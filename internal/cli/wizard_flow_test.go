package cli

import (
	"context"
	"testing"

	"github.com/acamargo/studia/internal/creation"
	"github.com/acamargo/studia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// walkToReview drives the wizard through the four answer steps.
func walkToReview(d *TestDriver, topic string) {
	d.PressKey('n')
	d.Type(topic)
	d.PressEnter() // topic → level
	d.PressEnter() // level (beginner) → pace
	d.PressDown()
	d.PressEnter() // pace (moderate) → goal
	d.PressEnter() // goal select → notes input
	d.PressEnter() // notes → review
}

func wizardState(t *testing.T, d *TestDriver) creation.State {
	t.Helper()
	v, ok := d.ActiveView().(*wizardView)
	require.True(t, ok, "active view is not the wizard")
	return v.store.GetState()
}

func TestWizard_CollectsAnswersStepByStep(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	walkToReview(d, "Ancient Rome")

	st := wizardState(t, d)
	assert.Equal(t, creation.StepReview, st.Step)
	assert.Equal(t, "Ancient Rome", st.CourseName)
	assert.Equal(t, domain.LevelBeginner, st.KnowledgeLevel)
	assert.Equal(t, domain.PaceModerate, st.StudyPace)
	assert.Equal(t, domain.GoalCareer, st.Goal)

	view := d.View()
	assert.Contains(t, view, "Ancient Rome")
	assert.Contains(t, view, "Step 5 of 5")
}

func TestWizard_BackPreservesAnswers(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	walkToReview(d, "Ancient Rome")
	d.PressEsc() // back to goal
	d.PressEsc() // back to pace

	st := wizardState(t, d)
	assert.Equal(t, creation.StepStudyPace, st.Step)
	assert.Equal(t, "Ancient Rome", st.CourseName)
	assert.Equal(t, domain.GoalCareer, st.Goal)
}

func TestWizard_LaunchOpensGeneratingView(t *testing.T) {
	app, _, _ := testApp(t)
	d := NewTestDriver(t, app)

	walkToReview(d, "Ancient Rome")
	d.PressEnter() // create

	assert.Equal(t, ViewGenerating, d.ActiveViewID())

	courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Ancient Rome", courses[0].Name)
	assert.Equal(t, domain.CourseGenerating, courses[0].Status)

	// Leave the generating view so its tracker is stopped.
	d.PressEsc()
}

func TestWizard_LaunchFailureStaysOnReviewAndRetries(t *testing.T) {
	app, stub, _ := testApp(t)
	stub.triggerOK = false
	stub.triggerMsg = "generator busy"

	d := NewTestDriver(t, app)
	walkToReview(d, "Ancient Rome")
	d.PressEnter() // create, rejected

	assert.Equal(t, ViewWizard, d.ActiveViewID())
	assert.Contains(t, d.View(), "generator busy")

	// The persisted draft is reused on retry.
	st := wizardState(t, d)
	assert.NotEmpty(t, st.CourseID)

	stub.mu.Lock()
	stub.triggerOK = true
	stub.mu.Unlock()

	d.PressEnter() // retry
	assert.Equal(t, ViewGenerating, d.ActiveViewID())

	courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	d.PressEsc()
}
