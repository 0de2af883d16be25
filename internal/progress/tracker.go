package progress

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/acamargo/studia/internal/backend"
	"github.com/acamargo/studia/internal/domain"
	"github.com/acamargo/studia/internal/feed"
	"github.com/acamargo/studia/internal/realtime"
)

// PollInterval is the fixed cadence of the status poll loop.
const PollInterval = 1500 * time.Millisecond

// StatusClient is the slice of the backend client the tracker needs.
type StatusClient interface {
	CheckStatus(ctx context.Context, courseID string) (*backend.StatusResult, error)
}

// TrackerConfig wires a Tracker's collaborators.
type TrackerConfig struct {
	CourseID string
	Status   StatusClient
	Feed     realtime.Feed

	// Interval overrides PollInterval when > 0 (used by tests).
	Interval time.Duration
	// IDs overrides the id generator for the display queues.
	IDs feed.IDGenerator

	// OnCompleted and OnFailed are the terminal navigation actions.
	OnCompleted func()
	OnFailed    func()

	// Logf receives transient poll failures. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Tracker owns one course-generation session's progress tracking: the poll
// loop, the push subscriptions and the bounded display queues. Start and
// Stop are paired; Stop releases every timer and subscription and is safe
// to call more than once.
type Tracker struct {
	cfg      TrackerConfig
	rec      *Reconciler
	ctl      *Controller
	messages *feed.MessageQueue
	evidence *feed.EvidenceWindow
	logf     func(string, ...any)

	started  bool
	cancel   context.CancelFunc
	stopOnce sync.Once
	wg       sync.WaitGroup
	inFlight atomic.Bool
	unsubs   []func()
}

// NewTracker creates a Tracker for one course. Status and Feed are
// required.
func NewTracker(cfg TrackerConfig) (*Tracker, error) {
	if cfg.CourseID == "" {
		return nil, errors.New("tracker: course id is required")
	}
	if cfg.Status == nil {
		return nil, errors.New("tracker: status client is required")
	}
	if cfg.Feed == nil {
		return nil, errors.New("tracker: realtime feed is required")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = PollInterval
	}
	logf := cfg.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Tracker{
		cfg:      cfg,
		rec:      NewReconciler(),
		ctl:      NewController(cfg.OnCompleted, cfg.OnFailed),
		messages: feed.NewMessageQueue(cfg.IDs),
		evidence: feed.NewEvidenceWindow(cfg.IDs),
		logf:     logf,
	}, nil
}

// Start subscribes to the push feed, joins the course channel and launches
// the poll loop. It may be called once per Tracker.
func (t *Tracker) Start(ctx context.Context) error {
	if t.started {
		return errors.New("tracker: already started")
	}
	t.started = true

	ctx, t.cancel = context.WithCancel(ctx)

	t.unsubs = append(t.unsubs,
		t.cfg.Feed.SubscribeConnection(func(connected bool) {
			// Re-join after every reconnect; reconciled progress is kept.
			if connected {
				if err := t.cfg.Feed.JoinCourse(t.cfg.CourseID); err != nil {
					t.logf("rejoining course %s: %v", t.cfg.CourseID, err)
				}
			}
		}),
		t.cfg.Feed.SubscribeResearchUpdate(t.onResearchUpdate),
		t.cfg.Feed.SubscribeSourceFound(t.onSourceFound),
		t.cfg.Feed.SubscribeResearchCompleted(t.onResearchCompleted),
	)

	if t.cfg.Feed.Connected() {
		if err := t.cfg.Feed.JoinCourse(t.cfg.CourseID); err != nil {
			t.logf("joining course %s: %v", t.cfg.CourseID, err)
		}
	}

	t.wg.Add(1)
	go t.pollLoop(ctx)
	return nil
}

// Stop cancels the poll loop, unsubscribes from the push feed and stops all
// pending timers. Idempotent; no terminal action fires after Stop returns.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		if t.cancel != nil {
			t.cancel()
		}
		for _, unsub := range t.unsubs {
			unsub()
		}
		t.unsubs = nil
		t.ctl.Close()
		t.evidence.Close()
		t.wg.Wait()
	})
}

// Snapshot returns the current reconciled progress state.
func (t *Tracker) Snapshot() Snapshot {
	return t.rec.Snapshot()
}

// Messages returns the deduplicated status message window in arrival order.
func (t *Tracker) Messages() []feed.Message {
	return t.messages.Snapshot()
}

// Evidence returns the sliding source window, including leaving items.
func (t *Tracker) Evidence() []feed.EvidenceItem {
	return t.evidence.Snapshot()
}

// Connected reports the push transport's connection state.
func (t *Tracker) Connected() bool {
	return t.cfg.Feed.Connected()
}

// pollLoop fires at a fixed interval regardless of how long an individual
// poll takes. A tick arriving while a previous request is still in flight
// is skipped so a stale response can never race a fresh one.
func (t *Tracker) pollLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if !t.inFlight.CompareAndSwap(false, true) {
			continue
		}
		t.pollOnce(ctx)
		t.inFlight.Store(false)

		if t.rec.Snapshot().Terminal() {
			return
		}
	}
}

// pollOnce performs one status check. A failed request is logged and
// retried on the next scheduled tick; it never alters reconciled state.
func (t *Tracker) pollOnce(ctx context.Context) {
	res, err := t.cfg.Status.CheckStatus(ctx, t.cfg.CourseID)
	if err != nil {
		if ctx.Err() == nil {
			t.logf("polling status for %s: %v", t.cfg.CourseID, err)
		}
		return
	}

	sig := Signal{Source: SourcePoll, Percent: &res.Progress}
	if stage, ok := domain.ParseGenerationStage(res.Status); ok {
		sig.Stage = stage
	}
	snap := t.rec.Observe(sig)
	t.messages.Add(res.Message, feed.OriginGeneric)
	t.ctl.Observe(snap)
}

func (t *Tracker) onResearchUpdate(ev realtime.ResearchUpdate) {
	sig := Signal{Source: SourcePush, Percent: ev.Progress}
	if stage, ok := domain.ParseGenerationStage(ev.Status); ok {
		sig.Stage = stage
	}
	snap := t.rec.Observe(sig)
	t.messages.Add(ev.Message, feed.OriginPush)
	if ev.CurrentStep != "" {
		t.messages.Add(ev.CurrentStep, feed.OriginStep)
	}
	t.ctl.Observe(snap)
}

func (t *Tracker) onSourceFound(ev realtime.SourceFound) {
	t.evidence.Add(feed.EvidenceItem{
		Title:  ev.Source.Title,
		URL:    ev.Source.URL,
		Domain: ev.Source.Domain,
	})
}

func (t *Tracker) onResearchCompleted(ev realtime.ResearchCompleted) {
	done := 100.0
	snap := t.rec.Observe(Signal{
		Source:  SourcePush,
		Stage:   domain.StageCompleted,
		Percent: &done,
	})
	t.messages.Add(ev.Message, feed.OriginPush)
	t.ctl.Observe(snap)
}
