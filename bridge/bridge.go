// Package bridge coordinates a device's single host goroutine with the
// goroutines that serve viewers.
//
// The host goroutine is the only one allowed to draw into the live page and
// to run host-only teardown. Other goroutines reach the store through
// WithStoreLock and schedule host-only work with RunOnHost or Later; the host
// runs that work whenever it calls Tick, which every host callback does on
// exit, or while it idles in Loop.
//
// A Bridge also tracks the device lifecycle:
//
//	Starting -> Running -> Closing -> Closed
//
// Transitions only move forward. Entering Closed drops queued work and
// releases every goroutine blocked in RunOnHost or AwaitPending.
package bridge

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gglive/store"
)

// Bridge errors.
var (
	// ErrClosed is returned when the bridge reached Closed before the
	// requested work could run.
	ErrClosed = errors.New("bridge: closed")

	// ErrInvalidTransition is returned by Transition for moves that are not
	// strictly forward.
	ErrInvalidTransition = errors.New("bridge: invalid state transition")

	// ErrHostCallbackViolation is the panic value raised when two
	// goroutines are inside host callbacks at the same time.
	ErrHostCallbackViolation = errors.New("bridge: concurrent host callback")
)

type task struct {
	fn      func()
	done    chan struct{} // nil for Later
	started atomic.Bool
}

// Bridge is the sync bridge of one device.
type Bridge struct {
	store *store.Store
	log   *slog.Logger

	mu      sync.Mutex
	queue   []*task
	pending int
	drained chan struct{} // closed when pending drops to zero
	wake    chan struct{}

	state  atomic.Int32
	closed chan struct{}

	inHost atomic.Bool
}

// New creates a bridge for s in the Starting state.
func New(s *store.Store, opts ...Option) *Bridge {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	drained := make(chan struct{})
	close(drained)
	return &Bridge{
		store:   s,
		log:     o.logger,
		drained: drained,
		wake:    make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
}

// Store returns the store guarded by the bridge.
func (b *Bridge) Store() *store.Store {
	return b.store
}

// WithStoreLock runs fn holding the store lock. The lock is released on
// every exit path, including a panic in fn.
func (b *Bridge) WithStoreLock(fn func(tx *store.Tx) error) error {
	if b.State() == Closed {
		return ErrClosed
	}
	return b.store.Update(fn)
}

// Enter marks the calling goroutine as being inside a host callback and
// returns the function that leaves it. A second goroutine entering while
// the first is still inside panics with ErrHostCallbackViolation.
func (b *Bridge) Enter() (exit func()) {
	if !b.inHost.CompareAndSwap(false, true) {
		panic(fmt.Errorf("%w: host callbacks must run on a single goroutine", ErrHostCallbackViolation))
	}
	return func() { b.inHost.Store(false) }
}
