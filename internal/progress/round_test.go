package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		x    float64
		step int
		want int
	}{
		{x: 3.0, step: 25, want: 0},
		{x: 3.0, step: 50, want: 0},
		{x: 2.6, step: 25, want: 50},
		{x: 2.6, step: 50, want: 50},
		{x: 0.1, step: 25, want: 0},
		{x: 0.2, step: 25, want: 25},
		{x: 0.9, step: 25, want: 100},
		{x: 7.75, step: 25, want: 75},
		// ties go to the even multiple
		{x: 0.25, step: 50, want: 0},
		{x: 0.75, step: 50, want: 100},
		{x: 0.125, step: 25, want: 0},
		{x: 0.375, step: 25, want: 50},
		{x: 1.5, step: 0, want: 0},
	}

	for _, tt := range tests {
		got := Round(tt.x, tt.step)
		assert.Equal(t, tt.want, got, "Round(%v, %d)", tt.x, tt.step)
	}
}

func TestRound_AlwaysAStyleKeyOrZero(t *testing.T) {
	s := Styles[0]
	for i := 0; i <= 1000; i++ {
		x := float64(i) / 97
		for _, step := range []int{25, 50} {
			n := Round(x, step)
			if n == 0 {
				continue
			}
			assert.NotEmpty(t, s.Fill(n), "Round(%v, %d) = %d has no glyph", x, step, n)
		}
	}
}

func TestDigits(t *testing.T) {
	tests := map[int]int{0: 1, 9: 1, 10: 2, 99: 2, 100: 3, 12345: 5, -7: 2}
	for n, want := range tests {
		assert.Equal(t, want, digits(n), "digits(%d)", n)
	}
}

func TestStyleAt(t *testing.T) {
	for i := range Styles {
		s, idx := StyleAt(i)
		assert.Equal(t, i, idx)
		assert.Equal(t, Styles[i], s)
	}

	s, idx := StyleAt(len(Styles))
	assert.Equal(t, 0, idx)
	assert.Equal(t, Styles[0], s)
}

func TestStyle_Fill(t *testing.T) {
	s := Styles[0]
	assert.Equal(t, "/", s.Fill(25))
	assert.Equal(t, "-", s.Fill(50))
	assert.Equal(t, "\\", s.Fill(75))
	assert.Equal(t, "=", s.Fill(100))
	assert.Equal(t, "", s.Fill(0))
	assert.Equal(t, "", s.Fill(40))
}

func TestStyles_GlyphsAreSingleCell(t *testing.T) {
	for _, s := range Styles {
		for _, g := range []string{s.Space, s.Fill25, s.Fill50, s.Fill75, s.Fill100} {
			assert.Equal(t, 1, widthOf(g), "style %q glyph %q", s.Name, g)
		}
	}
}
