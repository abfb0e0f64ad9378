// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import "context"

//go:generate mockgen -destination=../../mock/detect/detect.go -package=mock_detect . Observer,Prober,Dispatcher,Scanner

// Observer receives scan notifications. OnStart is called exactly once
// before any probe, OnUpdate zero or more times with increasing bucket
// values, and OnComplete exactly once, last.
type Observer interface {
	OnStart(message string)
	OnUpdate(percentage int)
	OnComplete(ips []string)
}

// ProgressObserver may be implemented by an Observer that also wants the
// number of reachable hosts found so far. OnProgress is called right after
// each OnUpdate with the same percentage.
type ProgressObserver interface {
	OnProgress(percentage int, found int)
}

// Prober checks whether a single address is reachable
type Prober interface {
	Probe(ctx context.Context, address string) (bool, error)
}

// Dispatcher runs a callback on some execution context
type Dispatcher interface {
	Dispatch(fn func())
}

// Scanner interface for scanning a subnet range for reachable hosts
type Scanner interface {
	Scan(cfg *Config, observer Observer) error
	ScanContext(ctx context.Context, cfg *Config, observer Observer) error
}

// Target a single address to probe along with its position in the
// generated sequence
type Target struct {
	Address string
	Index   int
}
