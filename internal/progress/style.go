package progress

import "github.com/mattn/go-runewidth"

// Style is one row of the glyph table. Fill glyphs are keyed by how much of
// a single character cell they represent.
type Style struct {
	Name    string
	Left    string
	Right   string
	Space   string
	Fill25  string
	Fill50  string
	Fill75  string
	Fill100 string
}

// Styles is the style table. Add a style by appending a row.
var Styles = []Style{
	{Name: "classic", Left: "[", Right: "]", Space: " ", Fill25: "/", Fill50: "-", Fill75: "\\", Fill100: "="},
	{Name: "dotted", Left: "{", Right: "}", Space: " ", Fill25: ".", Fill50: "-", Fill75: "+", Fill100: "*"},
	{Name: "blocks", Left: "", Right: "", Space: "░", Fill25: "▒", Fill50: "▓", Fill75: "▊", Fill100: "█"},
}

// cells measures glyphs in terminal columns. Ambiguous-width runes (the
// shade and block glyphs) count as one cell regardless of locale.
var cells = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// StyleAt returns the style at index i, or style 0 when i is out of range.
func StyleAt(i int) (Style, int) {
	if i < 0 || i >= len(Styles) {
		return Styles[0], 0
	}
	return Styles[i], i
}

// Fill returns the glyph for a rounded sub-cell amount (25, 50, 75 or 100).
// Any other amount has no glyph and yields "".
func (s Style) Fill(amount int) string {
	switch amount {
	case 25:
		return s.Fill25
	case 50:
		return s.Fill50
	case 75:
		return s.Fill75
	case 100:
		return s.Fill100
	}
	return ""
}

// capWidth is the number of cells taken by the left and right caps.
func (s Style) capWidth() int {
	return cells.StringWidth(s.Left) + cells.StringWidth(s.Right)
}
