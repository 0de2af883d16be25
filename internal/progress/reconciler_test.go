package progress

import (
	"sync"
	"testing"

	"github.com/acamargo/studia/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func TestReconciler_MonotonicProgress(t *testing.T) {
	r := NewReconciler()

	inputs := []float64{10, 40, 25, 40, 90, 5}
	want := []float64{10, 40, 40, 40, 90, 90}

	src := SourcePoll
	for i, p := range inputs {
		if i%2 == 1 {
			src = SourcePush
		} else {
			src = SourcePoll
		}
		snap := r.Observe(Signal{Source: src, Percent: pct(p)})
		assert.Equal(t, want[i], snap.Progress, "after input %v", p)
	}
}

func TestReconciler_StepDerivation(t *testing.T) {
	tests := []struct {
		progress float64
		step     int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{15, 2},
		{50, 5},
		{55, 6},
		{99, 10},
		{100, 10},
	}
	for _, tc := range tests {
		r := NewReconciler()
		snap := r.Observe(Signal{Source: SourcePoll, Percent: pct(tc.progress)})
		assert.Equal(t, tc.step, snap.Step, "progress %v", tc.progress)
	}
}

func TestReconciler_LabelOverwrittenNotMonotonic(t *testing.T) {
	r := NewReconciler()

	r.Observe(Signal{Source: SourcePush, Stage: domain.StageAnalyzing, Percent: pct(60)})
	snap := r.Observe(Signal{Source: SourcePoll, Stage: domain.StageResearching, Percent: pct(30)})

	assert.Equal(t, domain.StageResearching, snap.Stage, "label follows the latest signal")
	assert.Equal(t, 60.0, snap.Progress, "progress does not")
}

func TestReconciler_MalformedSignalIgnored(t *testing.T) {
	r := NewReconciler()
	r.Observe(Signal{Source: SourcePoll, Stage: domain.StageResearching, Percent: pct(30)})

	snap := r.Observe(Signal{Source: SourcePush, Percent: pct(250)})
	assert.Equal(t, 30.0, snap.Progress, "out-of-range percent is no update")

	snap = r.Observe(Signal{Source: SourcePush, Percent: pct(-5)})
	assert.Equal(t, 30.0, snap.Progress)

	snap = r.Observe(Signal{Source: SourcePush})
	assert.Equal(t, 30.0, snap.Progress, "absent fields update nothing")
	assert.Equal(t, domain.StageResearching, snap.Stage)
}

func TestReconciler_CompletionNeedsBothConditions(t *testing.T) {
	r := NewReconciler()

	// Completed label arrives first, but progress is short of 100.
	snap := r.Observe(Signal{Source: SourcePush, Stage: domain.StageCompleted, Percent: pct(95)})
	assert.False(t, snap.Completed)

	// Progress 100 arrives from the other source; now both halves hold.
	snap = r.Observe(Signal{Source: SourcePoll, Percent: pct(100)})
	assert.True(t, snap.Completed)
	assert.Equal(t, 100.0, snap.Progress)
	assert.Equal(t, TotalSteps, snap.Step)
}

func TestReconciler_TerminalIsSticky(t *testing.T) {
	r := NewReconciler()
	r.Observe(Signal{Source: SourcePush, Stage: domain.StageCompleted, Percent: pct(100)})

	snap := r.Observe(Signal{Source: SourcePoll, Stage: domain.StageResearching, Percent: pct(10)})
	assert.True(t, snap.Completed)
	assert.Equal(t, 100.0, snap.Progress)
	assert.Equal(t, domain.StageCompleted, snap.Stage)
}

func TestReconciler_Failed(t *testing.T) {
	r := NewReconciler()
	r.Observe(Signal{Source: SourcePoll, Stage: domain.StageResearching, Percent: pct(40)})

	snap := r.Observe(Signal{Source: SourcePoll, Stage: domain.StageFailed, Percent: pct(40)})
	assert.True(t, snap.Failed)
	assert.False(t, snap.Completed)

	// Failure is sticky too.
	snap = r.Observe(Signal{Source: SourcePush, Stage: domain.StageResearching, Percent: pct(80)})
	assert.True(t, snap.Failed)
	assert.Equal(t, 40.0, snap.Progress)
}

func TestReconciler_InterleavedSourcesScenario(t *testing.T) {
	// Course assigned → poll {researching,20} → push {researching,35} →
	// stale poll {analyzing,30}: displayed progress 0→20→35→35.
	r := NewReconciler()
	require.Equal(t, 0.0, r.Snapshot().Progress)

	snap := r.Observe(Signal{Source: SourcePoll, Stage: domain.StageResearching, Percent: pct(20)})
	assert.Equal(t, 20.0, snap.Progress)

	snap = r.Observe(Signal{Source: SourcePush, Stage: domain.StageResearching, Percent: pct(35), Message: "Fonte X encontrada"})
	assert.Equal(t, 35.0, snap.Progress)

	snap = r.Observe(Signal{Source: SourcePoll, Stage: domain.StageAnalyzing, Percent: pct(30)})
	assert.Equal(t, 35.0, snap.Progress, "never drops to the stale 30")
	assert.Equal(t, domain.StageAnalyzing, snap.Stage)
}

func TestReconciler_ConcurrentObserve(t *testing.T) {
	r := NewReconciler()

	var wg sync.WaitGroup
	for i := 1; i <= 100; i++ {
		wg.Add(1)
		go func(p float64) {
			defer wg.Done()
			r.Observe(Signal{Source: SourcePush, Percent: pct(p)})
		}(float64(i%100 + 1))
	}
	wg.Wait()

	assert.Equal(t, 100.0, r.Snapshot().Progress, "max of all observed values")
}
