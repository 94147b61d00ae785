package bridge

import "context"

// RunOnHost queues fn for the host goroutine and blocks until it has run.
// It returns ctx.Err() if ctx ends first (fn may still run later) and
// ErrClosed if the bridge reaches Closed before fn runs.
//
// RunOnHost must not be called from the host goroutine itself, which would
// wait for a Tick that never comes.
func (b *Bridge) RunOnHost(ctx context.Context, fn func()) error {
	t := &task{fn: fn, done: make(chan struct{})}
	if !b.push(t) {
		return ErrClosed
	}
	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.closed:
		// fn itself may have closed the bridge.
		if t.started.Load() {
			<-t.done
			return nil
		}
		return ErrClosed
	}
}

// Later queues fn for the host goroutine without waiting for it.
// It returns ErrClosed if the bridge is already closed.
func (b *Bridge) Later(fn func()) error {
	if !b.push(&task{fn: fn}) {
		return ErrClosed
	}
	return nil
}

// AwaitPending blocks until every task queued so far has run, ctx ends or
// the bridge closes.
func (b *Bridge) AwaitPending(ctx context.Context) error {
	b.mu.Lock()
	drained := b.drained
	b.mu.Unlock()

	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-b.closed:
		return nil
	}
}

// Pending returns the number of queued tasks that have not finished.
func (b *Bridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// Tick runs queued tasks on the calling goroutine, which must be the host,
// until the queue is empty. Tasks queued by a running task run in the same
// Tick. It returns the number of tasks run.
func (b *Bridge) Tick() int {
	n := 0
	for {
		t, ok := b.pop()
		if !ok {
			return n
		}
		b.run(t)
		n++
	}
}

// Loop idles the host goroutine, running queued tasks as they arrive, until
// ctx ends or the bridge reaches Closed. It returns nil on close.
func (b *Bridge) Loop(ctx context.Context) error {
	for {
		b.Tick()
		select {
		case <-b.closed:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case <-b.wake:
		}
	}
}

func (b *Bridge) push(t *task) bool {
	b.mu.Lock()
	if b.State() == Closed {
		b.mu.Unlock()
		return false
	}
	b.queue = append(b.queue, t)
	if b.pending == 0 {
		b.drained = make(chan struct{})
	}
	b.pending++
	b.mu.Unlock()

	select {
	case b.wake <- struct{}{}:
	default:
	}
	return true
}

func (b *Bridge) pop() (*task, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil, false
	}
	t := b.queue[0]
	b.queue[0] = nil
	b.queue = b.queue[1:]
	t.started.Store(true)
	return t, true
}

func (b *Bridge) run(t *task) {
	defer func() {
		if t.done != nil {
			close(t.done)
		}
		b.mu.Lock()
		b.finish()
		b.mu.Unlock()
	}()
	t.fn()
}

// finish marks one task done. Must hold b.mu.
func (b *Bridge) finish() {
	if b.pending == 0 {
		return
	}
	b.pending--
	if b.pending == 0 {
		close(b.drained)
	}
}

// shutdownQueue drops every queued task. Callers blocked in RunOnHost
// observe the closed channel and return ErrClosed.
func (b *Bridge) shutdownQueue() {
	b.mu.Lock()
	dropped := len(b.queue)
	b.queue = nil
	if b.pending > 0 {
		b.pending = 0
		close(b.drained)
	}
	b.mu.Unlock()

	close(b.closed)
	if dropped > 0 {
		b.log.Warn("bridge: dropped queued host tasks", "count", dropped)
	}
}
