package progress

import (
	"sync"
	"time"
)

// TerminalDelay is how long the controller waits before firing the terminal
// action, giving the UI a moment to show the final state.
const TerminalDelay = 1200 * time.Millisecond

// Controller watches reconciled snapshots and fires exactly one terminal
// action per session: OnCompleted when generation finished, OnFailed when
// it failed. Once an action is scheduled no second one can be, regardless
// of further signals.
type Controller struct {
	onCompleted func()
	onFailed    func()
	delay       time.Duration

	mu        sync.Mutex
	scheduled bool
	closed    bool
	timer     *time.Timer

	// afterFunc is swapped in tests to fire without waiting.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewController creates a controller with the default delay. Either
// callback may be nil.
func NewController(onCompleted, onFailed func()) *Controller {
	return &Controller{
		onCompleted: onCompleted,
		onFailed:    onFailed,
		delay:       TerminalDelay,
		afterFunc:   time.AfterFunc,
	}
}

// Observe inspects a snapshot and schedules the matching terminal action
// the first time a terminal state is seen.
func (c *Controller) Observe(snap Snapshot) {
	if !snap.Terminal() {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scheduled || c.closed {
		return
	}
	c.scheduled = true

	action := c.onCompleted
	if snap.Failed {
		action = c.onFailed
	}
	if action == nil {
		return
	}
	c.timer = c.afterFunc(c.delay, func() {
		c.mu.Lock()
		closed := c.closed
		c.mu.Unlock()
		if !closed {
			action()
		}
	})
}

// Close cancels any pending terminal action. After Close returns no action
// fires. Closing twice is safe.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
	}
}
