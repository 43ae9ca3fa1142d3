// Package progress renders a single-line progress bar that is repainted in
// place with a carriage return.
//
// The bar is sized once at construction to fill a fixed number of terminal
// columns. Each Update advances the counter by one and repaints the whole
// line, so the printed width never changes:
//
//	[=========\            ] 4/10
//
// The cell after the last full glyph carries a partial glyph for the
// fractional remainder, picked from the style's 25/50/75/100 glyphs.
package progress

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/schmitthub/linebar/internal/logger"
	"github.com/schmitthub/linebar/internal/termwidth"
)

var (
	// ErrInvalidTotal is returned by New when total is less than one.
	ErrInvalidTotal = errors.New("progress: total must be at least 1")

	// ErrComplete is returned by Update once the counter has reached total.
	ErrComplete = errors.New("progress: bar already complete")
)

// flusher is satisfied by buffered sinks such as *bufio.Writer.
type flusher interface {
	Flush() error
}

// Renderer paints one progress bar. It is not safe for concurrent use;
// callers sharing a terminal between renderers must serialize writes.
type Renderer struct {
	out io.Writer

	total        int
	counter      int
	displayWidth int
	barWidth     int
	style        Style
	styleIndex   int
	showCounters bool
}

// Option configures a Renderer.
type Option func(*settings)

type settings struct {
	width        int
	style        int
	showCounters bool
	widthFunc    termwidth.Provider
}

// WithWidth fixes the display width in columns. Zero or negative values
// leave the width to the width provider.
func WithWidth(n int) Option {
	return func(s *settings) { s.width = n }
}

// WithStyle selects a row of Styles. Out-of-range values select style 0.
func WithStyle(i int) Option {
	return func(s *settings) { s.style = i }
}

// WithShowCounters controls the trailing "n/total" suffix.
func WithShowCounters(show bool) Option {
	return func(s *settings) { s.showCounters = show }
}

// WithWidthProvider replaces termwidth.Detect as the source of the display
// width when no explicit width is set.
func WithWidthProvider(p termwidth.Provider) Option {
	return func(s *settings) { s.widthFunc = p }
}

// Options is the loose configuration form used by config-driven callers.
// A nil ShowCounters means true.
type Options struct {
	Width        int
	Style        int
	ShowCounters *bool
}

// Apply converts o into functional options.
func (o Options) Apply() []Option {
	opts := []Option{WithWidth(o.Width), WithStyle(o.Style)}
	if o.ShowCounters != nil {
		opts = append(opts, WithShowCounters(*o.ShowCounters))
	}
	return opts
}

// New creates a Renderer for a bar that will receive total updates and
// paints to out. The width provider is consulted only when no positive
// width was given.
func New(total int, out io.Writer, opts ...Option) (*Renderer, error) {
	if total < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidTotal, total)
	}

	cfg := settings{showCounters: true, widthFunc: termwidth.Detect}
	for _, opt := range opts {
		opt(&cfg)
	}

	width := cfg.width
	if width <= 0 {
		width = cfg.widthFunc()
	}

	style, idx := StyleAt(cfg.style)
	if idx != cfg.style {
		logger.Debug().Int("style", cfg.style).Msg("unknown progress style, using default")
	}

	r := &Renderer{
		out:          out,
		total:        total,
		displayWidth: width,
		style:        style,
		styleIndex:   idx,
		showCounters: cfg.showCounters,
	}
	r.barWidth = width - r.decorationWidth()

	logger.Debug().
		Int("total", total).
		Int("width", width).
		Int("bar_width", r.barWidth).
		Int("style", idx).
		Bool("counters", r.showCounters).
		Msg("progress bar configured")

	return r, nil
}

// decorationWidth is the number of columns not available to the bar body:
// the caps and, with counters shown, " total/total".
func (r *Renderer) decorationWidth() int {
	w := r.style.capWidth()
	if r.showCounters {
		w += digits(r.total)*2 + 2
	}
	return w
}

// Total returns the expected number of updates.
func (r *Renderer) Total() int { return r.total }

// Counter returns the number of updates applied so far.
func (r *Renderer) Counter() int { return r.counter }

// DisplayWidth returns the full line width in columns.
func (r *Renderer) DisplayWidth() int { return r.displayWidth }

// BarWidth returns the columns left for fill and space glyphs when the
// counter has as many digits as total.
func (r *Renderer) BarWidth() int { return r.barWidth }

// Style returns the index of the style in use.
func (r *Renderer) Style() int { return r.styleIndex }

// ShowCounters reports whether the "n/total" suffix is printed.
func (r *Renderer) ShowCounters() bool { return r.showCounters }

// Done reports whether the counter has reached total.
func (r *Renderer) Done() bool { return r.counter >= r.total }

// Setup paints the empty bar without moving the cursor to a new line.
func (r *Renderer) Setup() error {
	var b strings.Builder
	b.WriteString(r.style.Left)
	b.WriteString(repeat(r.style.Space, r.bodyWidth(r.counter)))
	b.WriteString(r.style.Right)
	r.writeCounters(&b, r.counter)
	return r.paint(b.String())
}

// Update advances the counter by one and repaints the line. Once the
// counter has reached total it returns ErrComplete and writes nothing.
func (r *Renderer) Update() error {
	if r.Done() {
		return ErrComplete
	}
	r.counter++
	return r.paint("\r" + r.Render(r.counter))
}

// Render formats the bar as it looks after counter updates. The result has
// no leading carriage return.
func (r *Renderer) Render(counter int) string {
	percent := float64(counter) / float64(r.total) * float64(r.barWidth+r.digitPad(counter))
	full := int(math.Floor(percent))

	// Coarse steps when there are few updates per column.
	step := 25
	if r.total <= r.barWidth*4 {
		step = 50
	}
	half := r.style.Fill(Round(percent, step))

	// With counters hidden the pad still scales the fill, which can run
	// past the body on narrow bars; cap it so the line keeps its width.
	body := r.bodyWidth(counter)
	if counter <= r.total {
		full = min(full, max(body, 0))
		if full+widthOf(half) > body {
			half = ""
		}
	}

	var b strings.Builder
	b.WriteString(r.style.Left)
	b.WriteString(repeat(r.style.Fill100, full))
	b.WriteString(half)
	b.WriteString(repeat(r.style.Space, body-full-widthOf(half)))
	b.WriteString(r.style.Right)
	r.writeCounters(&b, counter)
	return b.String()
}

// Clear blanks the whole line and returns the cursor to column 0.
func (r *Renderer) Clear() error {
	if err := r.paint("\r" + strings.Repeat(" ", max(r.displayWidth, 0))); err != nil {
		return err
	}
	return r.paint("\r")
}

// digitPad is the number of columns freed while counter prints with fewer
// digits than total.
func (r *Renderer) digitPad(counter int) int {
	return digits(r.total) - digits(counter)
}

// bodyWidth is the number of fill and space columns between the caps for
// counter. Only a printed counter frees columns for the body.
func (r *Renderer) bodyWidth(counter int) int {
	if !r.showCounters {
		return r.barWidth
	}
	return r.barWidth + r.digitPad(counter)
}

func (r *Renderer) writeCounters(b *strings.Builder, counter int) {
	if !r.showCounters {
		return
	}
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(counter))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(r.total))
}

// paint writes s in a single call and flushes buffered sinks.
func (r *Renderer) paint(s string) error {
	if _, err := io.WriteString(r.out, s); err != nil {
		return fmt.Errorf("writing progress bar: %w", err)
	}
	if f, ok := r.out.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flushing progress bar: %w", err)
		}
	}
	return nil
}

// repeat is strings.Repeat that treats negative counts as zero. Counts go
// negative when the display is narrower than the decorations.
func repeat(glyph string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(glyph, n)
}

func widthOf(s string) int {
	return cells.StringWidth(s)
}
