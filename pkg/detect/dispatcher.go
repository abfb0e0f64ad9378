// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import "context"

const callerQueueSize = 8

// BackgroundDispatcher runs each callback on its own goroutine
type BackgroundDispatcher struct{}

// NewBackgroundDispatcher returns a new instance of BackgroundDispatcher
func NewBackgroundDispatcher() *BackgroundDispatcher {
	return &BackgroundDispatcher{}
}

// Dispatch implements Dispatcher
func (d *BackgroundDispatcher) Dispatch(fn func()) {
	go fn()
}

// CallerDispatcher queues callbacks until the caller runs them from the
// goroutine it considers its foreground context
type CallerDispatcher struct {
	queue chan func()
}

// NewCallerDispatcher returns a new instance of CallerDispatcher
func NewCallerDispatcher() *CallerDispatcher {
	return &CallerDispatcher{
		queue: make(chan func(), callerQueueSize),
	}
}

// Dispatch implements Dispatcher. Blocks if the queue is full and nobody
// is running the dispatcher.
func (d *CallerDispatcher) Dispatch(fn func()) {
	d.queue <- fn
}

// Run executes queued callbacks on the calling goroutine until ctx is done
func (d *CallerDispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-d.queue:
			fn()
		}
	}
}

// RunPending executes every callback already queued and returns how many
// were run
func (d *CallerDispatcher) RunPending() int {
	count := 0

	for {
		select {
		case fn := <-d.queue:
			fn()
			count++
		default:
			return count
		}
	}
}
