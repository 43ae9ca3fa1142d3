// Package termwidth reports the column count of the controlling terminal.
// Detection never fails: when no terminal can be queried it falls back to
// the COLUMNS environment variable and finally to 80 columns.
package termwidth

import (
	"os"
	"strconv"
	"strings"

	"github.com/schmitthub/linebar/internal/logger"
	"golang.org/x/term"
)

// DefaultWidth is used when nothing else reports a usable width.
const DefaultWidth = 80

// ttyPath is the controlling terminal device.
const ttyPath = "/dev/tty"

// Provider returns a positive terminal width in columns.
type Provider func() int

// Detector walks the fallback chain. The zero value always reports
// DefaultWidth; use NewDetector for the process's real streams.
type Detector struct {
	// Files are queried in order. The first positive width wins.
	Files []*os.File

	// OpenTTY opens the controlling terminal. Returning an error skips
	// that step.
	OpenTTY func() (*os.File, error)

	// Getenv looks up environment variables.
	Getenv func(string) string
}

// NewDetector returns a Detector over stdin, stdout and stderr.
func NewDetector() *Detector {
	return &Detector{
		Files: []*os.File{os.Stdin, os.Stdout, os.Stderr},
		OpenTTY: func() (*os.File, error) {
			return os.Open(ttyPath)
		},
		Getenv: os.Getenv,
	}
}

// Detect returns the width of the current terminal using the real
// process streams. It satisfies Provider.
func Detect() int {
	return NewDetector().Width()
}

// Width returns the first positive width found by querying each file, then
// the controlling terminal, then $COLUMNS, then DefaultWidth.
func (d *Detector) Width() int {
	for _, f := range d.Files {
		if w, ok := FromFile(f); ok {
			return w
		}
	}

	if d.OpenTTY != nil {
		if f, err := d.OpenTTY(); err == nil {
			w, ok := FromFile(f)
			f.Close()
			if ok {
				return w
			}
		} else {
			logger.Debug().Err(err).Msg("controlling terminal unavailable")
		}
	}

	if d.Getenv != nil {
		if w, ok := parseColumns(d.Getenv("COLUMNS")); ok {
			return w
		}
	}

	logger.Debug().Int("width", DefaultWidth).Msg("terminal width unknown, using default")
	return DefaultWidth
}

// FromFile queries the window size of f. It reports false when f is nil,
// not a terminal, or reports a zero width.
func FromFile(f *os.File) (int, bool) {
	if f == nil {
		return 0, false
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return 0, false
	}
	return w, true
}

func parseColumns(v string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
