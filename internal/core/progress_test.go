// SPDX-License-Identifier: GPL-3.0-or-later

package core

import (
	"testing"

	"github.com/robgonnella/go-netdetect/pkg/detect"
	"github.com/stretchr/testify/assert"
)

func TestCoreProgress(t *testing.T) {
	cfg := detect.NewBuilder().Subnet("10.0.0").Build()

	t.Run("shows found devices in the progress message", func(st *testing.T) {
		c := New()
		c.Initialize(cfg, detect.NewPingProber(), false, false, "")

		var observer detect.ProgressObserver = c

		c.OnUpdate(40)
		observer.OnProgress(40, 7)

		assert.Equal(st, "scanning 10.0.0.x - found 7 devices", c.tracker.Message)
	})

	t.Run("leaves tracker alone without progress output", func(st *testing.T) {
		c := New()
		c.Initialize(cfg, detect.NewPingProber(), true, false, "")

		c.OnUpdate(40)
		c.OnProgress(40, 7)

		assert.Equal(st, "scanning 10.0.0.x", c.tracker.Message)
	})
}
