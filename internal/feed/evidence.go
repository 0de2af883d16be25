package feed

import (
	"sync"
	"time"
)

const (
	// MaxEvidence is the live (non-leaving) window size.
	MaxEvidence = 4
	// EvictionGrace is how long a leaving item stays visible so the UI can
	// animate its removal.
	EvictionGrace = 500 * time.Millisecond
)

// EvidenceItem is one discovered source shown in the sliding window.
type EvidenceItem struct {
	ID           string
	Title        string
	URL          string
	Domain       string
	DiscoveredAt time.Time
	Leaving      bool
}

// EvidenceWindow keeps a bounded sliding window of discovered sources.
// Overflowing items are marked leaving immediately and purged after a grace
// delay; each eviction batch is independently timed. Safe for concurrent use.
type EvidenceWindow struct {
	mu     sync.Mutex
	items  []EvidenceItem
	ids    IDGenerator
	grace  time.Duration
	timers []*time.Timer
	closed bool

	// afterFunc is swapped in tests to fire purges deterministically.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewEvidenceWindow creates an empty window with the default grace delay.
func NewEvidenceWindow(ids IDGenerator) *EvidenceWindow {
	if ids == nil {
		ids = NewIDGenerator()
	}
	return &EvidenceWindow{
		ids:       ids,
		grace:     EvictionGrace,
		afterFunc: time.AfterFunc,
	}
}

// Add appends a discovered source. If the live count exceeds the window
// size the oldest live items are marked leaving and scheduled for purge.
func (w *EvidenceWindow) Add(item EvidenceItem) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	if item.ID == "" {
		item.ID = w.ids.NewID()
	}
	if item.DiscoveredAt.IsZero() {
		item.DiscoveredAt = time.Now()
	}
	item.Leaving = false
	w.items = append(w.items, item)

	over := w.liveCountLocked() - MaxEvidence
	if over <= 0 {
		return
	}
	for i := range w.items {
		if over == 0 {
			break
		}
		if !w.items[i].Leaving {
			w.items[i].Leaving = true
			over--
		}
	}
	w.timers = append(w.timers, w.afterFunc(w.grace, w.purgeLeaving))
}

// purgeLeaving removes every item still flagged leaving when the timer
// fires. It intentionally does not purge a fixed count: a batch timer must
// not remove items that were not leaving at firing time.
func (w *EvidenceWindow) purgeLeaving() {
	w.mu.Lock()
	defer w.mu.Unlock()
	kept := w.items[:0]
	for _, it := range w.items {
		if !it.Leaving {
			kept = append(kept, it)
		}
	}
	w.items = kept
}

// Snapshot returns all items in discovery order, including leaving ones.
func (w *EvidenceWindow) Snapshot() []EvidenceItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]EvidenceItem, len(w.items))
	copy(out, w.items)
	return out
}

// Live returns the items not currently marked leaving.
func (w *EvidenceWindow) Live() []EvidenceItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	var out []EvidenceItem
	for _, it := range w.items {
		if !it.Leaving {
			out = append(out, it)
		}
	}
	return out
}

// Close stops all pending eviction timers. Closing twice is safe; no purge
// fires after Close returns.
func (w *EvidenceWindow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.closed = true
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = nil
}

func (w *EvidenceWindow) liveCountLocked() int {
	n := 0
	for _, it := range w.items {
		if !it.Leaving {
			n++
		}
	}
	return n
}
