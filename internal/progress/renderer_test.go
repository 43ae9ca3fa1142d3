package progress

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWidth(n int) Option {
	return WithWidthProvider(func() int { return n })
}

func newTestRenderer(t *testing.T, total int, opts ...Option) (*Renderer, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	r, err := New(total, buf, opts...)
	require.NoError(t, err)
	return r, buf
}

// lastLine returns the most recent repaint: everything after the last CR.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\r'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func TestNew_InvalidTotal(t *testing.T) {
	for _, total := range []int{0, -1, -100} {
		r, err := New(total, &bytes.Buffer{}, WithWidth(20))
		assert.Nil(t, r)
		assert.ErrorIs(t, err, ErrInvalidTotal, "total %d", total)
	}
}

func TestNew_Defaults(t *testing.T) {
	r, _ := newTestRenderer(t, 10, fixedWidth(80))

	assert.Equal(t, 10, r.Total())
	assert.Equal(t, 0, r.Counter())
	assert.Equal(t, 80, r.DisplayWidth())
	assert.Equal(t, 0, r.Style())
	assert.True(t, r.ShowCounters())
	// caps (2) + "10" twice (4) + space and slash (2)
	assert.Equal(t, 72, r.BarWidth())
	assert.False(t, r.Done())
}

func TestNew_BarWidth(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		width    int
		style    int
		counters bool
		want     int
	}{
		{name: "classic with counters", total: 4, width: 20, style: 0, counters: true, want: 14},
		{name: "classic without counters", total: 4, width: 20, style: 0, counters: false, want: 18},
		{name: "dotted with three digit total", total: 100, width: 20, style: 1, counters: true, want: 10},
		{name: "blocks have no caps", total: 4, width: 20, style: 2, counters: true, want: 16},
		{name: "blocks without counters use full width", total: 4, width: 20, style: 2, counters: false, want: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRenderer(t, tt.total,
				WithWidth(tt.width), WithStyle(tt.style), WithShowCounters(tt.counters))
			assert.Equal(t, tt.want, r.BarWidth())
		})
	}
}

func TestNew_InvalidStyleFallsBack(t *testing.T) {
	for _, style := range []int{-1, 3, 99} {
		r, _ := newTestRenderer(t, 4, WithWidth(20), WithStyle(style))
		assert.Equal(t, 0, r.Style(), "style %d", style)
	}
}

func TestNew_WidthProvider(t *testing.T) {
	t.Run("used when width unset", func(t *testing.T) {
		calls := 0
		r, _ := newTestRenderer(t, 4, WithWidthProvider(func() int {
			calls++
			return 33
		}))
		assert.Equal(t, 33, r.DisplayWidth())
		assert.Equal(t, 1, calls)
	})

	t.Run("used when width is zero or negative", func(t *testing.T) {
		for _, w := range []int{0, -5} {
			r, _ := newTestRenderer(t, 4, WithWidth(w), fixedWidth(41))
			assert.Equal(t, 41, r.DisplayWidth())
		}
	})

	t.Run("skipped when width given", func(t *testing.T) {
		r, _ := newTestRenderer(t, 4, WithWidth(20), WithWidthProvider(func() int {
			t.Fatal("width provider should not be called")
			return 0
		}))
		assert.Equal(t, 20, r.DisplayWidth())
	})
}

func TestOptions_Apply(t *testing.T) {
	hidden := false
	r, _ := newTestRenderer(t, 4, Options{Width: 30, Style: 1, ShowCounters: &hidden}.Apply()...)
	assert.Equal(t, 30, r.DisplayWidth())
	assert.Equal(t, 1, r.Style())
	assert.False(t, r.ShowCounters())

	r, _ = newTestRenderer(t, 4, Options{Width: 30, Style: 7}.Apply()...)
	assert.Equal(t, 0, r.Style())
	assert.True(t, r.ShowCounters(), "nil ShowCounters should default to true")
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		width    int
		style    int
		counters bool
		want     string
	}{
		{name: "classic", total: 4, width: 20, counters: true, want: "[              ] 0/4"},
		{name: "classic hidden counters", total: 3, width: 12, counters: false, want: "[          ]"},
		{name: "dotted two digit total pads for single digit zero", total: 12, width: 20, style: 1, counters: true, want: "{             } 0/12"},
		{name: "blocks", total: 4, width: 20, style: 2, counters: true, want: "░░░░░░░░░░░░░░░░ 0/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(t, tt.total,
				WithWidth(tt.width), WithStyle(tt.style), WithShowCounters(tt.counters))

			require.NoError(t, r.Setup())
			assert.Equal(t, tt.want, buf.String())
			assert.Equal(t, tt.width, widthOf(buf.String()))
			assert.Equal(t, 0, r.Counter(), "Setup must not advance the counter")
			assert.NotContains(t, buf.String(), "\n")
		})
	}
}

func TestUpdate_Sequence(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		width    int
		style    int
		counters bool
		want     []string
	}{
		{
			name:     "classic four steps",
			total:    4,
			width:    20,
			counters: true,
			want: []string{
				"[===-          ] 1/4",
				"[=======       ] 2/4",
				"[==========-   ] 3/4",
				"[==============] 4/4",
			},
		},
		{
			name:  "classic hidden counters",
			total: 3,
			width: 12,
			want: []string{
				"[===-      ]",
				"[======-   ]",
				"[==========]",
			},
		},
		{
			name:  "hidden counters keep the digit pad in the fill",
			total: 10,
			width: 20,
			want: []string{
				"[==                ]",
				"[====              ]",
				"[=====-            ]",
				"[=======-          ]",
				"[=========-        ]",
				"[===========-      ]",
				"[=============-    ]",
				"[===============   ]",
				"[================= ]",
				"[==================]",
			},
		},
		{
			name:     "blocks",
			total:    4,
			width:    20,
			style:    2,
			counters: true,
			want: []string{
				"████░░░░░░░░░░░░ 1/4",
				"████████░░░░░░░░ 2/4",
				"████████████░░░░ 3/4",
				"████████████████ 4/4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, buf := newTestRenderer(t, tt.total,
				WithWidth(tt.width), WithStyle(tt.style), WithShowCounters(tt.counters))

			for i, want := range tt.want {
				buf.Reset()
				require.NoError(t, r.Update())
				assert.Equal(t, "\r"+want, buf.String(), "update %d", i+1)
				assert.Equal(t, i+1, r.Counter())
			}
			assert.True(t, r.Done())
		})
	}
}

func TestUpdate_DigitPadKeepsWidth(t *testing.T) {
	r, buf := newTestRenderer(t, 12, WithWidth(20), WithStyle(1))

	want := map[int]string{
		1:  "{*            } 1/12",
		5:  "{*****-       } 5/12",
		9:  "{**********   } 9/12",
		10: "{**********  } 10/12",
		12: "{************} 12/12",
	}
	for c := 1; c <= 12; c++ {
		buf.Reset()
		require.NoError(t, r.Update())
		line := lastLine(buf.String())
		assert.Equal(t, 20, widthOf(line), "counter %d: %q", c, line)
		if w, ok := want[c]; ok {
			assert.Equal(t, w, line, "counter %d", c)
		}
	}
}

func TestRender_HiddenCountersCapFillAtBody(t *testing.T) {
	r, _ := newTestRenderer(t, 10, WithWidth(8), WithShowCounters(false))
	require.Equal(t, 6, r.BarWidth())

	// 9/10 of 7 columns would be six full cells and a half glyph
	assert.Equal(t, "[=====-]", r.Render(8))
	assert.Equal(t, "[======]", r.Render(9))
	assert.Equal(t, "[======]", r.Render(10))
	for c := 0; c <= 10; c++ {
		assert.Equal(t, 8, widthOf(r.Render(c)), "counter %d", c)
	}
}

func TestUpdate_FineStepsWhenManyUpdatesPerCell(t *testing.T) {
	// bar width 10, total 100 > 10*4 selects quarter-cell glyphs
	r, _ := newTestRenderer(t, 100, WithWidth(20))
	require.Equal(t, 10, r.BarWidth())

	assert.Equal(t, "[            ] 1/100", r.Render(1))
	assert.Equal(t, "[/           ] 2/100", r.Render(2))
	assert.Equal(t, "[\\           ] 7/100", r.Render(7))
	assert.Equal(t, "[=====-     ] 50/100", r.Render(50))
}

func TestUpdate_EveryLineFillsDisplayWidth(t *testing.T) {
	totals := []int{1, 2, 3, 4, 7, 9, 10, 11, 37, 99, 100, 101, 250}
	widths := []int{12, 20, 33, 80, 121}

	for style := range Styles {
		for _, counters := range []bool{true, false} {
			for _, total := range totals {
				for _, width := range widths {
					r, buf := newTestRenderer(t, total,
						WithWidth(width), WithStyle(style), WithShowCounters(counters))

					require.NoError(t, r.Setup())
					require.Equal(t, width, widthOf(buf.String()))

					for c := 1; c <= total; c++ {
						buf.Reset()
						require.NoError(t, r.Update())
						line := buf.String()
						require.True(t, strings.HasPrefix(line, "\r"))
						require.Equal(t, width, widthOf(line[1:]),
							"style=%d counters=%v total=%d width=%d counter=%d line=%q",
							style, counters, total, width, c, line)
					}
				}
			}
		}
	}
}

func TestUpdate_FullGlyphsNonDecreasing(t *testing.T) {
	tests := []struct {
		total int
		width int
	}{
		{total: 4, width: 20},
		{total: 9, width: 12},
		{total: 10, width: 80},
		{total: 50, width: 80},
		{total: 99, width: 40},
		{total: 100, width: 80},
	}

	for style, s := range Styles {
		for _, counters := range []bool{true, false} {
			for _, tt := range tests {
				r, _ := newTestRenderer(t, tt.total,
					WithWidth(tt.width), WithStyle(style), WithShowCounters(counters))
				prev := -1
				for c := 1; c <= tt.total; c++ {
					n := strings.Count(r.Render(c), s.Fill100)
					assert.GreaterOrEqual(t, n, prev,
						"style=%d counters=%v total=%d width=%d counter=%d",
						style, counters, tt.total, tt.width, c)
					prev = n
				}
			}
		}
	}
}

func TestUpdate_CompleteBarIsFull(t *testing.T) {
	for style, s := range Styles {
		for _, counters := range []bool{true, false} {
			r, _ := newTestRenderer(t, 37, WithWidth(60), WithStyle(style), WithShowCounters(counters))
			want := s.Left + strings.Repeat(s.Fill100, r.BarWidth()) + s.Right
			if counters {
				want += " 37/37"
			}
			assert.Equal(t, want, r.Render(37), "style %d", style)
		}
	}
}

func TestUpdate_PastTotal(t *testing.T) {
	r, buf := newTestRenderer(t, 2, WithWidth(20))
	require.NoError(t, r.Update())
	require.NoError(t, r.Update())

	buf.Reset()
	err := r.Update()
	assert.ErrorIs(t, err, ErrComplete)
	assert.Equal(t, 2, r.Counter())
	assert.Empty(t, buf.String(), "no repaint past total")
}

func TestEndToEnd_FourUpdates(t *testing.T) {
	r, buf := newTestRenderer(t, 4, WithWidth(20))

	prev := -1
	for i := 0; i < 4; i++ {
		buf.Reset()
		require.NoError(t, r.Update())
		line := lastLine(buf.String())

		assert.Equal(t, 20, widthOf(line))
		n := strings.Count(line, "=")
		assert.Greater(t, n, prev)
		prev = n
	}
}

func TestClear(t *testing.T) {
	r, buf := newTestRenderer(t, 4, WithWidth(20))
	require.NoError(t, r.Update())

	buf.Reset()
	require.NoError(t, r.Clear())
	assert.Equal(t, "\r"+strings.Repeat(" ", 20)+"\r", buf.String())
}

func TestRender_Zero(t *testing.T) {
	r, buf := newTestRenderer(t, 4, WithWidth(20))
	require.NoError(t, r.Setup())
	assert.Equal(t, buf.String(), r.Render(0))
}

func TestRender_NarrowDisplayDoesNotPanic(t *testing.T) {
	r, _ := newTestRenderer(t, 5, WithWidth(3))
	assert.Negative(t, r.BarWidth())

	assert.NotPanics(t, func() {
		_ = r.Setup()
		for !r.Done() {
			_ = r.Update()
		}
		_ = r.Clear()
	})
	assert.Equal(t, "[] 5/5", r.Render(5))
}

func TestPaint_FlushesBufferedSink(t *testing.T) {
	var dst bytes.Buffer
	w := bufio.NewWriterSize(&dst, 4096)

	r, err := New(4, w, WithWidth(20))
	require.NoError(t, err)

	require.NoError(t, r.Setup())
	assert.Equal(t, "[              ] 0/4", dst.String(), "Setup must flush")

	require.NoError(t, r.Update())
	assert.Equal(t, 0, w.Buffered())
	assert.True(t, strings.HasSuffix(dst.String(), "\r[===-          ] 1/4"))
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

type failingFlusher struct {
	bytes.Buffer
	err error
}

func (f *failingFlusher) Flush() error { return f.err }

func TestPaint_Errors(t *testing.T) {
	boom := errors.New("boom")

	r, err := New(4, failingWriter{err: boom}, WithWidth(20))
	require.NoError(t, err)
	assert.ErrorIs(t, r.Setup(), boom)
	assert.ErrorIs(t, r.Update(), boom)
	assert.ErrorIs(t, r.Clear(), boom)

	r, err = New(4, &failingFlusher{err: boom}, WithWidth(20))
	require.NoError(t, err)
	assert.ErrorIs(t, r.Setup(), boom)
}
