// SPDX-License-Identifier: GPL-3.0-or-later

package detect_test

import (
	"strings"
	"testing"

	"github.com/robgonnella/go-netdetect/pkg/detect"
	"github.com/stretchr/testify/assert"
)

func TestTargets(t *testing.T) {
	t.Run("generates one target per offset", func(st *testing.T) {
		ranges := [][2]int{{2, 255}, {0, 0}, {1, 3}, {100, 199}, {0, 255}}

		for _, r := range ranges {
			cfg := detect.NewBuilder().StartRange(r[0]).EndRange(r[1]).Build()

			targets := detect.Targets(cfg)

			assert.Len(st, targets, r[1]-r[0]+1)
		}
	})

	t.Run("generates ascending addresses with positional index", func(st *testing.T) {
		cfg := detect.NewBuilder().Subnet("10.0.0").StartRange(1).EndRange(3).Build()

		targets := detect.Targets(cfg)

		assert.Equal(st, []detect.Target{
			{Address: "10.0.0.1", Index: 0},
			{Address: "10.0.0.2", Index: 1},
			{Address: "10.0.0.3", Index: 2},
		}, targets)
	})
}

func TestStartMessage(t *testing.T) {
	banner := strings.Repeat("*", 50)

	t.Run("describes background delivery", func(st *testing.T) {
		cfg := detect.NewBuilder().Subnet("10.0.0").StartRange(1).EndRange(3).Build()

		expected := strings.Join([]string{
			banner,
			"Starting to discover your local network IPs ...",
			"Subnet configured to: 10.0.0",
			"Starting discovery from ip: 10.0.0.1",
			"Ending discovery to ip: 10.0.0.3",
			"Observation will be done in IO Thread",
			banner,
		}, "\n")

		assert.Equal(st, expected, detect.StartMessage(cfg))
	})

	t.Run("describes caller delivery", func(st *testing.T) {
		cfg := detect.NewBuilder().ObserveResultInMainThread(true).Build()

		message := detect.StartMessage(cfg)

		assert.Contains(st, message, "Observation will be done in Main Thread")
		assert.Contains(st, message, "Starting discovery from ip: 192.168.1.2")
		assert.Contains(st, message, "Ending discovery to ip: 192.168.1.255")
	})
}
