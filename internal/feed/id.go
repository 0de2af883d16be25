// Package feed holds the bounded display queues fed by the generation
// tracker: the deduplicated status message queue and the sliding
// source/evidence window.
package feed

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces unique tokens for queue entries. Implementations
// must stay unique even when called many times within the same millisecond.
type IDGenerator interface {
	NewID() string
}

// defaultIDGenerator combines a millisecond timestamp, a process-wide
// monotonic counter and a short random suffix. The counter alone already
// guarantees uniqueness; the timestamp keeps ids roughly sortable and the
// suffix keeps them unique across restarts.
type defaultIDGenerator struct {
	counter atomic.Uint64
}

// NewIDGenerator returns the production id generator.
func NewIDGenerator() IDGenerator {
	return &defaultIDGenerator{}
}

func (g *defaultIDGenerator) NewID() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("%d-%d-%s", time.Now().UnixMilli(), n, uuid.NewString()[:8])
}

// sequenceIDGenerator yields a deterministic id sequence for tests.
type sequenceIDGenerator struct {
	counter atomic.Uint64
}

// NewSequenceIDGenerator returns an IDGenerator producing "id-1", "id-2", ...
func NewSequenceIDGenerator() IDGenerator {
	return &sequenceIDGenerator{}
}

func (g *sequenceIDGenerator) NewID() string {
	return fmt.Sprintf("id-%d", g.counter.Add(1))
}
