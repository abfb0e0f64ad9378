// SPDX-License-Identifier: GPL-3.0-or-later

package logger_test

import (
	"testing"

	"github.com/robgonnella/go-netdetect/internal/logger"
)

func TestDebugLogging(t *testing.T) {
	debug := logger.NewDebugLogger()

	t.Run("prints nothing since not built with debug flag", func(st *testing.T) {
		debug.Debug().Int("progress", 10).Msg("scan progress")
		debug.Info().Str("subnet", "192.168.1").Msg("starting scan")
		debug.Error().Str("ip", "192.168.1.2").Msg("probe failed")
		debug.Warn().Msg("scan cancelled")
	})
}

func TestDebugComponentLogging(t *testing.T) {
	t.Run("component logger prints nothing since not built with debug flag", func(st *testing.T) {
		debug := logger.NewDebugLogger().Component("detect")

		debug.Info().Int("found", 2).Msg("scan complete")
	})
}
