// Package progress reconciles the two generation progress feeds, the polled
// status endpoint and the realtime push stream, into a single monotonically
// non-decreasing user-visible progress state, and drives the one-shot
// terminal transition when generation completes or fails.
package progress

import (
	"math"
	"sync"

	"github.com/acamargo/studia/internal/domain"
)

// TotalSteps is the number of discrete progress steps shown to the user.
const TotalSteps = 10

// Source tags which feed produced a signal.
type Source string

const (
	SourcePoll Source = "poll"
	SourcePush Source = "push"
)

// Signal is one progress observation from either feed. Percent is nil when
// the producer omitted it; Stage is empty when the status string was
// missing or unrecognized. Either field alone still updates its half of
// the reconciled state.
type Signal struct {
	Source  Source
	Stage   domain.GenerationStage
	Percent *float64
	Message string
}

// Snapshot is the reconciled state handed to the UI.
type Snapshot struct {
	Progress  float64 // 0..100, never decreases within a session
	Step      int     // 1..TotalSteps, derived from Progress
	Stage     domain.GenerationStage
	Completed bool
	Failed    bool
}

// Terminal reports whether no further reconciliation will change the state.
func (s Snapshot) Terminal() bool {
	return s.Completed || s.Failed
}

// Reconciler merges poll and push signals under the monotonic-max rule.
// Both feeds call Observe from their own goroutines; the reconciler is a
// reducer over last-known values, so interleaving order only affects when
// a terminal condition is noticed, never the values themselves.
type Reconciler struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewReconciler creates a reconciler at the session's starting state.
func NewReconciler() *Reconciler {
	return &Reconciler{
		snap: Snapshot{
			Progress: 0,
			Step:     1,
			Stage:    domain.StagePreparing,
		},
	}
}

// Observe folds one signal into the reconciled state and returns the
// result. Progress only ever increases; the stage label is overwritten by
// the latest signal of either origin. Once a terminal state is reached
// further signals are no-ops.
func (r *Reconciler) Observe(sig Signal) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snap.Terminal() {
		return r.snap
	}

	if sig.Percent != nil {
		p := *sig.Percent
		if p >= 0 && p <= 100 && p > r.snap.Progress {
			r.snap.Progress = p
		}
	}
	if sig.Stage != "" {
		r.snap.Stage = sig.Stage
	}
	r.snap.Step = stepFor(r.snap.Progress)

	// Completion requires both halves of the condition to hold in the
	// reconciled state; they may have arrived via different sources.
	if r.snap.Stage == domain.StageCompleted && r.snap.Progress >= 100 {
		r.snap.Progress = 100
		r.snap.Step = TotalSteps
		r.snap.Completed = true
	}
	if r.snap.Stage == domain.StageFailed {
		r.snap.Failed = true
	}

	return r.snap
}

// Snapshot returns the current reconciled state.
func (r *Reconciler) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

// stepFor maps a progress percentage onto a discrete step index.
func stepFor(progress float64) int {
	step := int(math.Ceil(progress / 100 * TotalSteps))
	if step < 1 {
		return 1
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}
