// Package loggertest provides a capturing logger for tests.
// *TestLogger satisfies iostreams.Logger.
package loggertest

import (
	"bytes"

	"github.com/rs/zerolog"
)

// TestLogger records JSON events in memory at every level.
type TestLogger struct {
	logger zerolog.Logger
	buf    *bytes.Buffer
}

// New returns a TestLogger whose events can be read back with Output.
func New() *TestLogger {
	buf := &bytes.Buffer{}
	return &TestLogger{logger: zerolog.New(buf), buf: buf}
}

// NewNop returns a TestLogger that drops every event.
func NewNop() *TestLogger {
	return &TestLogger{logger: zerolog.Nop(), buf: &bytes.Buffer{}}
}

func (tl *TestLogger) Debug() *zerolog.Event { return tl.logger.Debug() }
func (tl *TestLogger) Info() *zerolog.Event  { return tl.logger.Info() }
func (tl *TestLogger) Warn() *zerolog.Event  { return tl.logger.Warn() }
func (tl *TestLogger) Error() *zerolog.Event { return tl.logger.Error() }

// Output returns the captured events, one JSON object per line.
func (tl *TestLogger) Output() string { return tl.buf.String() }
