package cli

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/realtime"
	"github.com/acamargo/studia/internal/repository"
	"github.com/acamargo/studia/internal/service"
	"github.com/acamargo/studia/internal/testutil"
	"github.com/stretchr/testify/require"
)

// ansiPattern matches ANSI escape sequences for stripping in assertions.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// stubBackendClient is a scriptable backend.Client for TUI tests.
type stubBackendClient struct {
	mu           sync.Mutex
	status       backend.StatusResult
	statusErr    error
	threadErr    error
	triggerOK    bool
	triggerMsg   string
	threadCalls  int
	triggerCalls int
}

func (s *stubBackendClient) CreateInitialThread(context.Context, backend.CreateThreadRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadCalls++
	return s.threadErr
}

func (s *stubBackendClient) CheckStatus(context.Context, string) (*backend.StatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusErr != nil {
		return nil, s.statusErr
	}
	res := s.status
	return &res, nil
}

func (s *stubBackendClient) TriggerGeneration(context.Context, string) (*backend.TriggerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triggerCalls++
	return &backend.TriggerResult{Success: s.triggerOK, Message: s.triggerMsg}, nil
}

func (s *stubBackendClient) Available(context.Context) bool { return true }

func (s *stubBackendClient) setStatus(res backend.StatusResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = res
}

// fakeFeed is an in-process realtime.Feed backed by a Bus.
type fakeFeed struct {
	bus *realtime.Bus

	mu        sync.Mutex
	connected bool
	joins     []string
}

func newFakeFeed(connected bool) *fakeFeed {
	return &fakeFeed{bus: realtime.NewBus(), connected: connected}
}

func (f *fakeFeed) JoinCourse(courseID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return realtime.ErrNotConnected
	}
	f.joins = append(f.joins, courseID)
	return nil
}

func (f *fakeFeed) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *fakeFeed) SubscribeConnection(fn func(bool)) func() {
	return f.bus.SubscribeConnection(fn)
}

func (f *fakeFeed) SubscribeResearchUpdate(fn func(realtime.ResearchUpdate)) func() {
	return f.bus.SubscribeResearchUpdate(fn)
}

func (f *fakeFeed) SubscribeSourceFound(fn func(realtime.SourceFound)) func() {
	return f.bus.SubscribeSourceFound(fn)
}

func (f *fakeFeed) SubscribeResearchCompleted(fn func(realtime.ResearchCompleted)) func() {
	return f.bus.SubscribeResearchCompleted(fn)
}

func (f *fakeFeed) Close() error { return nil }

// testApp wires an App over an in-memory database, a scriptable backend
// and an in-process feed.
func testApp(t *testing.T) (*App, *stubBackendClient, *fakeFeed) {
	t.Helper()

	database := testutil.NewTestDB(t)
	courseRepo := repository.NewSQLiteCourseRepo(database)
	uow := testutil.NewTestUoW(database)

	stub := &stubBackendClient{triggerOK: true, status: backend.StatusResult{Status: "preparation"}}
	feed := newFakeFeed(true)

	app := &App{
		Courses:       service.NewCourseService(courseRepo),
		Creation:      service.NewCreationService(stub, uow, courseRepo),
		Backend:       stub,
		Feed:          feed,
		IsInteractive: func() bool { return false },
	}
	return app, stub, feed
}

// seedCourse persists a course through the service layer.
func seedCourse(t *testing.T, app *App, name string, opts ...testutil.CourseOption) *domain.Course {
	t.Helper()
	opts = append([]testutil.CourseOption{testutil.WithUserID(DefaultUserID)}, opts...)
	c := testutil.NewTestCourse(name, opts...)
	require.NoError(t, app.Courses.Create(context.Background(), c))
	return c
}
