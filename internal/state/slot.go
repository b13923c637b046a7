// Package state holds the observable UI state layer: one container per
// domain entity, each exposing named slots that move through
// Loading -> Success | Error as triggered work resolves.
package state

import "sync"

// Status is the lifecycle phase of a slot
type Status int

const (
	// StatusIdle means the slot has never been triggered
	StatusIdle Status = iota
	// StatusLoading means a triggered unit of work is in flight
	StatusLoading
	// StatusSuccess means the last completed work resolved with data
	StatusSuccess
	// StatusError means the last completed work failed
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable view of a slot at one point in time. Data is
// meaningful only when Status is StatusSuccess; Err and Kind only when
// Status is StatusError.
type Snapshot[T any] struct {
	Status Status
	Data   T
	Err    error
	Kind   ErrorKind
}

// Slot is a single named piece of observable load state. Writes are
// serialized by a mutex but concurrent triggers are not coalesced: two
// in-flight units of work race and the slot reflects whichever completes
// last. Retry is always an explicit re-trigger by the user.
type Slot[T any] struct {
	mu   sync.Mutex
	snap Snapshot[T]
	subs map[int]func(Snapshot[T])
	next int
}

// NewSlot creates a slot in the Idle state
func NewSlot[T any]() *Slot[T] {
	return &Slot[T]{subs: make(map[int]func(Snapshot[T]))}
}

// Get returns the current snapshot
func (s *Slot[T]) Get() Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Subscribe registers an observer called on every transition, and
// returns its unsubscribe function. The current snapshot is delivered
// immediately so late subscribers do not miss state.
func (s *Slot[T]) Subscribe(fn func(Snapshot[T])) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	snap := s.snap
	s.mu.Unlock()

	fn(snap)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Slot[T]) set(snap Snapshot[T]) {
	s.mu.Lock()
	s.snap = snap
	subs := make([]func(Snapshot[T]), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// setLoading is called synchronously inside the trigger method, before
// the worker goroutine is spawned, so observers always see Loading
// before the first suspension point.
func (s *Slot[T]) setLoading() {
	s.set(Snapshot[T]{Status: StatusLoading})
}

func (s *Slot[T]) succeed(data T) {
	s.set(Snapshot[T]{Status: StatusSuccess, Data: data})
}

func (s *Slot[T]) fail(err error) {
	s.set(Snapshot[T]{Status: StatusError, Err: err, Kind: Classify(err)})
}
