// Package ui provides the event loop that owns all view state and the bridge that
// moves background results onto it.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// Loop is the UI thread: a single goroutine draining a FIFO of tasks. View state
// (Button, Status and the form controllers) must only be touched from tasks.
type Loop struct {
	tasks  chan func()
	done   chan struct{}
	once   sync.Once
	logger *slog.Logger
}

func NewLoop(logger *slog.Logger, queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = 64
	}

	return &Loop{
		tasks:  make(chan func(), queueSize),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run drains tasks until ctx is cancelled or Stop is called. Tasks still queued
// at that point never run.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return nil
		case fn := <-l.tasks:
			l.run(fn)
		}
	}
}

// Post enqueues fn and reports false if the loop has stopped. It may block while
// the queue is full, so tasks should not post more than the queue holds.
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

// Invoke posts fn and waits until it ran. Never call it from a loop task.
func (l *Loop) Invoke(fn func()) bool {
	ran := make(chan struct{})
	if !l.Post(func() {
		defer close(ran)
		fn()
	}) {
		return false
	}

	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) run(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("ui task panicked", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()

	fn()
}
