// SPDX-License-Identifier: GPL-3.0-or-later

package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Logger our internal "singleton" wrapper around zerolog allowing us
// to redirect or silence every logger at once
type Logger struct {
	zl *zerolog.Logger
}

// unexported "singleton" logger
var logger Logger

func init() {
	Reset()
}

// New returns the internal "singleton" logger
func New() Logger {
	return logger
}

// SetGlobalLevel set level for all loggers
func SetGlobalLevel(level zerolog.Level) {
	if level == zerolog.DebugLevel {
		SetWithCaller()
		SetWithTimestamp()
	}

	zerolog.SetGlobalLevel(level)
}

// SetGlobalLevelName parses one of zerolog's level names
// ("debug", "info", "warn", ...) and applies it to all loggers
func SetGlobalLevelName(name string) error {
	level, err := zerolog.ParseLevel(name)

	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}

	SetGlobalLevel(level)

	return nil
}

// SetWithCaller enables showing caller in log context
func SetWithCaller() {
	*logger.zl = logger.zl.With().Caller().Logger()
}

// SetWithTimestamp enables showing timestamp in log context
func SetWithTimestamp() {
	*logger.zl = logger.zl.With().Timestamp().Logger()
}

// SetOutput sends all log output to w as json lines. Loggers already
// handed out by New follow the change.
func SetOutput(w io.Writer) {
	*logger.zl = logger.zl.Output(w)
}

// SetGlobalLogFile appends all log output to the file at path, creating
// it if needed. The caller closes the returned file when done logging.
func SetGlobalLogFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)

	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	SetOutput(f)

	return f, nil
}

// Reset resets logger to default values
func Reset() {
	zl := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger()

	if logger.zl == nil {
		logger = Logger{zl: &zl}
		return
	}

	*logger.zl = zl
}

// Info wrapper around zerolog Info
func (l Logger) Info() *zerolog.Event {
	return l.zl.Info()
}

// Debug wrapper around zerolog Debug
func (l Logger) Debug() *zerolog.Event {
	return l.zl.Debug()
}

// Warn wrapper around zerolog Warn
func (l Logger) Warn() *zerolog.Event {
	return l.zl.Warn()
}

// Error wrapper around zerolog Error
func (l Logger) Error() *zerolog.Event {
	return l.zl.Error()
}

// Fatal wrapper around zerolog Fatal
func (l Logger) Fatal() *zerolog.Event {
	return l.zl.Fatal()
}
