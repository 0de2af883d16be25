package realtime

import "sync"

// Bus is a multi-subscriber registry for the feed's event types. It
// replaces the single-mutable-callback-slot pattern: subscribing never
// replaces an earlier subscriber.
type Bus struct {
	mu         sync.Mutex
	next       int
	connection map[int]func(bool)
	updates    map[int]func(ResearchUpdate)
	sources    map[int]func(SourceFound)
	completed  map[int]func(ResearchCompleted)
}

// NewBus creates an empty registry.
func NewBus() *Bus {
	return &Bus{
		connection: make(map[int]func(bool)),
		updates:    make(map[int]func(ResearchUpdate)),
		sources:    make(map[int]func(SourceFound)),
		completed:  make(map[int]func(ResearchCompleted)),
	}
}

// SubscribeConnection registers a connection-state callback.
func (b *Bus) SubscribeConnection(fn func(bool)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.connection[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.connection, id)
		b.mu.Unlock()
	}
}

// SubscribeResearchUpdate registers a research-update callback.
func (b *Bus) SubscribeResearchUpdate(fn func(ResearchUpdate)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.updates[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.updates, id)
		b.mu.Unlock()
	}
}

// SubscribeSourceFound registers a source-discovery callback.
func (b *Bus) SubscribeSourceFound(fn func(SourceFound)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.sources[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.sources, id)
		b.mu.Unlock()
	}
}

// SubscribeResearchCompleted registers a completion callback.
func (b *Bus) SubscribeResearchCompleted(fn func(ResearchCompleted)) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.completed[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.completed, id)
		b.mu.Unlock()
	}
}

// PublishConnection delivers a connection-state change to all subscribers.
func (b *Bus) PublishConnection(connected bool) {
	for _, fn := range b.snapshotConnection() {
		fn(connected)
	}
}

// PublishResearchUpdate delivers a research update to all subscribers.
func (b *Bus) PublishResearchUpdate(ev ResearchUpdate) {
	b.mu.Lock()
	fns := make([]func(ResearchUpdate), 0, len(b.updates))
	for _, fn := range b.updates {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// PublishSourceFound delivers a source discovery to all subscribers.
func (b *Bus) PublishSourceFound(ev SourceFound) {
	b.mu.Lock()
	fns := make([]func(SourceFound), 0, len(b.sources))
	for _, fn := range b.sources {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

// PublishResearchCompleted delivers a completion notice to all subscribers.
func (b *Bus) PublishResearchCompleted(ev ResearchCompleted) {
	b.mu.Lock()
	fns := make([]func(ResearchCompleted), 0, len(b.completed))
	for _, fn := range b.completed {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn(ev)
	}
}

func (b *Bus) snapshotConnection() []func(bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fns := make([]func(bool), 0, len(b.connection))
	for _, fn := range b.connection {
		fns = append(fns, fn)
	}
	return fns
}
