package services

import (
	"context"
	"sync"
	"time"
)

// LoadState is the lifecycle of a screen's data
type LoadState string

const (
	StateLoading LoadState = "loading"
	StateReady   LoadState = "ready"
	StateError   LoadState = "error"
)

// Snapshot is the data of a loader at one point in time
type Snapshot[T any] struct {
	State      LoadState
	Data       T
	Err        error
	Generation uint64
	LoadedAt   time.Time
}

// Loader holds the fetched data of one mounted screen.
//
// Every fetch takes a new generation number and only the result of the
// latest generation is applied; earlier responses that arrive late are
// dropped. Detach marks the screen as unmounted, after which no result is
// applied at all.
type Loader[T any] struct {
	mu       sync.Mutex
	fetch    func(ctx context.Context) (T, error)
	gen      uint64
	detached bool
	snap     Snapshot[T]
	now      func() time.Time
}

// NewLoader creates a loader in the loading state
func NewLoader[T any](fetch func(ctx context.Context) (T, error)) *Loader[T] {
	return &Loader[T]{
		fetch: fetch,
		snap:  Snapshot[T]{State: StateLoading},
		now:   time.Now,
	}
}

// Begin starts a new generation. It returns false once detached.
func (l *Loader[T]) Begin() (uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return 0, false
	}
	l.gen++
	l.snap.State = StateLoading
	l.snap.Err = nil
	l.snap.Generation = l.gen
	return l.gen, true
}

// Complete applies the result of generation gen, replacing the previous
// data wholesale. It reports whether the result was applied.
func (l *Loader[T]) Complete(gen uint64, data T, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached || gen != l.gen {
		return false
	}

	var zero T
	l.snap = Snapshot[T]{Generation: gen, LoadedAt: l.now()}
	if err != nil {
		l.snap.State = StateError
		l.snap.Err = err
		l.snap.Data = zero
		return true
	}
	l.snap.State = StateReady
	l.snap.Data = data
	return true
}

// Load runs one fetch for a new generation
func (l *Loader[T]) Load(ctx context.Context) bool {
	gen, ok := l.Begin()
	if !ok {
		return false
	}
	data, err := l.fetch(ctx)
	return l.Complete(gen, data, err)
}

// Detach discards any outstanding fetch and stops future ones
func (l *Loader[T]) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detached = true
	l.gen++
}

// Detached reports whether the loader was detached
func (l *Loader[T]) Detached() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.detached
}

// Snapshot returns the current state
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}
