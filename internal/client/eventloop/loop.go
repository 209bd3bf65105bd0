// Package eventloop serializes every state change of the client onto one
// goroutine. Socket readers, HTTP completions and user commands post tasks;
// tasks run one at a time and to completion, so state owned by the loop
// needs no locking.
package eventloop

import (
	"context"
	"errors"
	"sync"
)

var ErrClosed = errors.New("event loop closed")

type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop whose queue holds up to buffer pending tasks before
// Post blocks.
func New(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Run executes tasks until ctx is cancelled or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		}
	}
}

// Post enqueues fn. It returns false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do enqueues fn and waits for it to finish. It must not be called from a
// task, that would deadlock the loop.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.done:
		return ErrClosed
	}
}

// Close stops the loop. Queued tasks that have not started are dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop stops.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
