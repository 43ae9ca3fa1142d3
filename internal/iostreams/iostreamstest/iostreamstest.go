// Package iostreamstest provides in-memory IOStreams for command tests.
package iostreamstest

import (
	"strings"
	"sync"

	"github.com/schmitthub/linebar/internal/iostreams"
	"github.com/schmitthub/linebar/internal/logger/loggertest"
)

// New returns streams that are not a terminal, 80 columns wide, with
// empty stdin and a nop logger.
func New() *TestIOStreams {
	out := &testBuffer{}
	errOut := &testBuffer{}

	ios := &iostreams.IOStreams{
		In:     strings.NewReader(""),
		Out:    out,
		ErrOut: errOut,
		Logger: loggertest.NewNop(),
	}
	ios.SetStdoutTTY(false)
	ios.SetWidthProvider(func() int { return 80 })

	return &TestIOStreams{IOStreams: ios, OutBuf: out, ErrBuf: errOut}
}

// TestIOStreams exposes the buffers behind Out and ErrOut.
type TestIOStreams struct {
	*iostreams.IOStreams
	OutBuf *testBuffer
	ErrBuf *testBuffer
}

// testBuffer is a mutex-guarded write buffer.
type testBuffer struct {
	mu   sync.Mutex
	data []byte
}

func (b *testBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *testBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.data)
}

// SetInteractive makes stdout report as a terminal.
func (t *TestIOStreams) SetInteractive(interactive bool) {
	t.IOStreams.SetStdoutTTY(interactive)
}

// SetTerminalWidth fixes the width reported by TerminalWidth.
func (t *TestIOStreams) SetTerminalWidth(width int) {
	t.IOStreams.SetWidthProvider(func() int { return width })
}
