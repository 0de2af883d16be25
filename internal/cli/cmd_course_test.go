package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCommand executes the root command with args and captures its output.
func runCommand(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return stripANSI(buf.String()), err
}

func TestCoursesCmd_ListsCourses(t *testing.T) {
	app, _, _ := testApp(t)
	seedCourse(t, app, "Ancient Rome")

	out, err := runCommand(t, app, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "Ancient Rome")
	assert.Contains(t, out, "DRAFT")
}

func TestCoursesCmd_RemoveByDisplayID(t *testing.T) {
	app, _, _ := testApp(t)
	c := seedCourse(t, app, "Ancient Rome")

	_, err := runCommand(t, app, "courses", "rm", c.DisplayID())
	require.NoError(t, err)

	courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
	require.NoError(t, err)
	assert.Empty(t, courses)
}

func TestCoursesCmd_RemoveUnknown(t *testing.T) {
	app, _, _ := testApp(t)

	_, err := runCommand(t, app, "courses", "rm", "deadbeef")
	assert.ErrorContains(t, err, "no course matches")
}

func TestStatusCmd_RendersBackendStatus(t *testing.T) {
	app, stub, _ := testApp(t)
	c := seedCourse(t, app, "Ancient Rome", testutil.WithCourseStatus(domain.CourseGenerating), testutil.WithCourseProgress(30))
	stub.setStatus(backend.StatusResult{Status: "researching", Progress: 35, Message: "Scanning sources"})

	out, err := runCommand(t, app, "status", c.DisplayID())
	require.NoError(t, err)
	assert.Contains(t, out, "Ancient Rome")
	assert.Contains(t, out, "Researching")
	assert.Contains(t, out, " 35%")
}

func TestCreateCmd_LaunchesGeneration(t *testing.T) {
	app, stub, _ := testApp(t)

	out, err := runCommand(t, app, "create",
		"--name", "Ancient Rome",
		"--level", "intermediate",
		"--goal", "academic",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Created course")
	assert.Equal(t, 1, stub.threadCalls)
	assert.Equal(t, 1, stub.triggerCalls)

	courses, err := app.Courses.ListByUser(context.Background(), DefaultUserID)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, domain.LevelIntermediate, courses[0].KnowledgeLevel)
	assert.Equal(t, domain.CourseGenerating, courses[0].Status)
}

func TestCreateCmd_RejectsInvalidLevel(t *testing.T) {
	app, _, _ := testApp(t)

	_, err := runCommand(t, app, "create", "--name", "Ancient Rome", "--level", "wizard")
	assert.ErrorContains(t, err, "invalid value")
}

func TestCreateCmd_RequiresName(t *testing.T) {
	app, _, _ := testApp(t)

	_, err := runCommand(t, app, "create")
	assert.Error(t, err)
}
