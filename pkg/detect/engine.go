// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/robgonnella/go-netdetect/internal/logger"
)

var (
	// ErrNilConfig returned when Scan is called without a configuration
	ErrNilConfig = errors.New("scan configuration is nil")
	// ErrNilObserver returned when Scan is called without an observer
	ErrNilObserver = errors.New("scan observer is nil")
	// ErrNoCallerDispatcher returned when results are requested on the
	// caller's context but the engine has no caller dispatcher
	ErrNoCallerDispatcher = errors.New("no caller dispatcher configured")
)

// Engine implements the Scanner interface using a bounded pool of probes
type Engine struct {
	prober      Prober
	concurrency int
	caller      Dispatcher
	background  Dispatcher
	debug       logger.DebugLogger
}

// New returns a new instance of Engine
func New(options ...Option) *Engine {
	engine := &Engine{
		prober:      NewPingProber(),
		concurrency: DefaultConcurrency,
		background:  NewBackgroundDispatcher(),
		debug:       logger.NewDebugLogger().Component("detect"),
	}

	for _, o := range options {
		o(engine)
	}

	return engine
}

// Scan starts an asynchronous scan of cfg reporting to observer. The
// returned error is only ever a construction time failure, probe failures
// are never reported.
func (e *Engine) Scan(cfg *Config, observer Observer) error {
	return e.ScanContext(context.Background(), cfg, observer)
}

// ScanContext is like Scan but stops dispatching new probes once ctx is
// done. In-flight probes receive ctx and OnComplete still fires with
// whatever was found.
func (e *Engine) ScanContext(ctx context.Context, cfg *Config, observer Observer) error {
	if cfg == nil {
		return ErrNilConfig
	}

	if observer == nil {
		return ErrNilObserver
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	dispatcher := e.background

	if cfg.DeliverOnCaller() {
		if e.caller == nil {
			return ErrNoCallerDispatcher
		}

		dispatcher = e.caller
	}

	targets := Targets(cfg)

	workers, err := newPool(e.concurrency)

	if err != nil {
		return err
	}

	go e.run(ctx, workers, cfg, targets, observer, dispatcher)

	return nil
}

func (e *Engine) run(
	ctx context.Context,
	workers *pool,
	cfg *Config,
	targets []Target,
	observer Observer,
	dispatcher Dispatcher,
) {
	state := newScanState(len(targets))

	e.debug.Info().
		Str("subnet", cfg.SubnetPrefix()).
		Int("start", cfg.StartOffset()).
		Int("end", cfg.EndOffset()).
		Int("concurrency", e.concurrency).
		Msg("starting scan")

	observer.OnStart(StartMessage(cfg))

	for _, target := range targets {
		if ctx.Err() != nil {
			e.debug.Warn().Err(ctx.Err()).Msg("scan cancelled, no longer dispatching probes")
			break
		}

		t := target

		workers.submit(func() {
			e.probe(ctx, t, state, observer)
		})
	}

	workers.shutdown()

	ips := state.snapshot()

	e.debug.Info().Int("found", len(ips)).Msg("scan complete")

	dispatcher.Dispatch(func() {
		observer.OnComplete(ips)
	})
}

func (e *Engine) probe(ctx context.Context, t Target, state *scanState, observer Observer) {
	if ctx.Err() != nil {
		return
	}

	reachable, err := e.prober.Probe(ctx, t.Address)

	if err != nil {
		e.debug.Error().Err(err).Str("ip", t.Address).Msg("probe failed")
		reachable = false
	}

	if bucket, found, ok := state.record(t, reachable, observer); ok {
		e.debug.Debug().
			Int("progress", bucket).
			Int("found", found).
			Msg("scan progress")
	}
}

// scanState mutable state shared by every probe of a single scan
type scanState struct {
	mux       *sync.Mutex
	notify    *sync.Mutex
	total     int
	reachable []string
	cursor    int
}

func newScanState(total int) *scanState {
	return &scanState{
		mux:       &sync.Mutex{},
		notify:    &sync.Mutex{},
		total:     total,
		reachable: []string{},
	}
}

// record stores a probe result and notifies observer if the result moved
// progress into a new bucket. notify is taken before mux is released so
// transitions reach the observer in commit order, while records that
// don't transition never wait on the observer.
func (s *scanState) record(t Target, reachable bool, observer Observer) (bucket, found int, ok bool) {
	s.mux.Lock()

	if reachable {
		s.reachable = append(s.reachable, t.Address)
	}

	found = len(s.reachable)

	bucket, ok = NextBucket(Percentage(t.Index, s.total), s.cursor)

	if !ok {
		s.mux.Unlock()
		return bucket, found, false
	}

	s.cursor = bucket

	s.notify.Lock()
	s.mux.Unlock()

	defer s.notify.Unlock()

	observer.OnUpdate(bucket)

	if p, isProgress := observer.(ProgressObserver); isProgress {
		p.OnProgress(bucket, found)
	}

	return bucket, found, true
}

func (s *scanState) snapshot() []string {
	s.mux.Lock()
	defer s.mux.Unlock()

	return slices.Clone(s.reachable)
}
