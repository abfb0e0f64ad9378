// SPDX-License-Identifier: GPL-3.0-or-later

//go:build debug

package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// runs after the disabled logger in debug.go is set up (files init in
// name order) and swaps it in place so already created copies see it
func init() {
	consoleWriter := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.StampMilli,
	}

	level := zerolog.DebugLevel

	if lvl, err := zerolog.ParseLevel(os.Getenv("NETDETECT_DEBUG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}

	zl := zerolog.New(consoleWriter).
		Level(level).
		With().
		Timestamp().
		Caller().
		Str("app", "go-netdetect").
		Logger()

	*debugLogger.zl = zl
}
