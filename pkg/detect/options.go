// SPDX-License-Identifier: GPL-3.0-or-later

package detect

// DefaultConcurrency number of probes allowed to run at the same time
const DefaultConcurrency = 4

type Option = func(e *Engine)

// WithProber sets the prober used to check each address
func WithProber(p Prober) Option {
	return func(e *Engine) {
		e.prober = p
	}
}

// WithConcurrency overrides the number of simultaneous probes
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

// WithCallerDispatcher sets the dispatcher used when a configuration asks
// for results on the caller's context
func WithCallerDispatcher(d Dispatcher) Option {
	return func(e *Engine) {
		e.caller = d
	}
}

// WithBackgroundDispatcher overrides the dispatcher used for background
// result delivery
func WithBackgroundDispatcher(d Dispatcher) Option {
	return func(e *Engine) {
		e.background = d
	}
}
