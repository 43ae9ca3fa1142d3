package iostreams

import "github.com/rs/zerolog"

// Logger provides leveled diagnostics for the command layer.
// Production uses logger.Forwarder{}; tests use loggertest.New() or
// loggertest.NewNop().
type Logger interface {
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
}
