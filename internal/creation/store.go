package creation

import "sync"

// Store is an observable container around the reducer. All mutation goes
// through Dispatch so the reducer is the single write path.
type Store struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

// NewStore creates a Store holding the initial wizard state.
func NewStore() *Store {
	return &Store{
		state: Initial(),
		subs:  make(map[int]func(State)),
	}
}

// GetState returns a snapshot of the current state.
func (st *Store) GetState() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}

// Dispatch applies the transition and notifies subscribers with the new
// state. Subscribers run outside the lock so they may call back into the
// store.
func (st *Store) Dispatch(t Transition) State {
	st.mu.Lock()
	st.state = Apply(st.state, t)
	s := st.state
	fns := make([]func(State), 0, len(st.subs))
	for _, fn := range st.subs {
		fns = append(fns, fn)
	}
	st.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
	return s
}

// Subscribe registers fn to be called after every dispatch. The returned
// function removes the subscription; calling it more than once is safe.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	id := st.next
	st.next++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}
