// SPDX-License-Identifier: GPL-3.0-or-later

package detect

import (
	"fmt"
	"strings"
)

const banner = "**************************************************"

// Targets generates the ordered list of probe targets for a configuration,
// one per offset in [start, end]
func Targets(cfg *Config) []Target {
	targets := make([]Target, 0, cfg.TargetCount())

	for offset := cfg.StartOffset(); offset <= cfg.EndOffset(); offset++ {
		targets = append(targets, Target{
			Address: fmt.Sprintf("%s.%d", cfg.SubnetPrefix(), offset),
			Index:   len(targets),
		})
	}

	return targets
}

// StartMessage returns the informational block passed to Observer.OnStart
func StartMessage(cfg *Config) string {
	observation := "IO Thread"

	if cfg.DeliverOnCaller() {
		observation = "Main Thread"
	}

	prefix := cfg.SubnetPrefix()

	lines := []string{
		banner,
		"Starting to discover your local network IPs ...",
		"Subnet configured to: " + prefix,
		fmt.Sprintf("Starting discovery from ip: %s.%d", prefix, cfg.StartOffset()),
		fmt.Sprintf("Ending discovery to ip: %s.%d", prefix, cfg.EndOffset()),
		"Observation will be done in " + observation,
		banner,
	}

	return strings.Join(lines, "\n")
}
