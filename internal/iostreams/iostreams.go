// Package iostreams bundles the standard streams so commands can be tested
// against in-memory buffers.
package iostreams

import (
	"io"
	"os"

	"github.com/schmitthub/linebar/internal/termwidth"
	"golang.org/x/term"
)

// IOStreams provides access to standard input/output/error streams.
// It follows the GitHub CLI pattern for testable I/O.
type IOStreams struct {
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer

	// Logger receives diagnostics. Never nil in production.
	Logger Logger

	// isOutputTTY caches whether stdout is a terminal.
	// -1 = unchecked, 0 = false, 1 = true
	isOutputTTY int

	// widthProvider overrides terminal width detection when set.
	widthProvider termwidth.Provider

	termWidthCache int
	termSizeCached bool
}

// NewIOStreams creates an IOStreams connected to standard streams.
func NewIOStreams(log Logger) *IOStreams {
	return &IOStreams{
		In:          os.Stdin,
		Out:         os.Stdout,
		ErrOut:      os.Stderr,
		Logger:      log,
		isOutputTTY: -1,
	}
}

// IsOutputTTY returns true if stdout is a terminal.
func (s *IOStreams) IsOutputTTY() bool {
	if s.isOutputTTY == -1 {
		s.isOutputTTY = boolToInt(isTerminal(s.Out))
	}
	return s.isOutputTTY == 1
}

// SetStdoutTTY overrides stdout terminal detection.
func (s *IOStreams) SetStdoutTTY(isTTY bool) {
	s.isOutputTTY = boolToInt(isTTY)
}

// SetWidthProvider replaces terminal width detection. Passing nil restores
// the default.
func (s *IOStreams) SetWidthProvider(p termwidth.Provider) {
	s.widthProvider = p
	s.termSizeCached = false
}

// TerminalWidth returns the width of the terminal in columns.
// Detection falls back to $COLUMNS and then 80, so the result is always
// positive. The value is cached until the provider is replaced; bars take
// their width once, at construction.
func (s *IOStreams) TerminalWidth() int {
	if s.termSizeCached {
		return s.termWidthCache
	}

	p := s.widthProvider
	if p == nil {
		p = termwidth.Detect
	}
	width := p()
	if width <= 0 {
		width = termwidth.DefaultWidth
	}

	s.termWidthCache = width
	s.termSizeCached = true
	return width
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
