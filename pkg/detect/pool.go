// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidConcurrency returned when a worker pool cannot be constructed
// with the requested number of workers
var ErrInvalidConcurrency = errors.New("invalid worker pool concurrency")

// pool runs at most size jobs at once
type pool struct {
	group *errgroup.Group
}

func newPool(size int) (*pool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidConcurrency, size)
	}

	group := &errgroup.Group{}
	group.SetLimit(size)

	return &pool{group: group}, nil
}

// submit blocks until a worker slot is free, then runs job on it
func (p *pool) submit(job func()) {
	p.group.Go(func() error {
		job()
		return nil
	})
}

// shutdown blocks until every submitted job has returned
func (p *pool) shutdown() {
	_ = p.group.Wait()
}
