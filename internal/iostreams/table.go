package iostreams

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// TablePrinter renders tabular data to IOStreams.Out. Columns are aligned
// with tabwriter. On a terminal a divider is drawn under the headers; piped
// output stays plain for scripts.
type TablePrinter struct {
	ios     *IOStreams
	headers []string
	rows    [][]string
}

// NewTablePrinter creates a new table printer with the given column headers.
// The table writes to ios.Out when Render() is called.
func (s *IOStreams) NewTablePrinter(headers ...string) *TablePrinter {
	return &TablePrinter{
		ios:     s,
		headers: headers,
	}
}

// AddRow adds a data row. Missing columns are rendered empty; extra
// columns are dropped.
func (tp *TablePrinter) AddRow(cols ...string) {
	tp.rows = append(tp.rows, tp.normalizeRow(cols))
}

// Len returns the number of data rows (not including headers).
func (tp *TablePrinter) Len() int {
	return len(tp.rows)
}

// Render writes the table to the IOStreams output.
func (tp *TablePrinter) Render() error {
	if len(tp.headers) == 0 {
		return nil
	}

	w := tabwriter.NewWriter(tp.ios.Out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(tp.headers, "\t"))
	if tp.ios.IsOutputTTY() {
		fmt.Fprintln(w, strings.Join(tp.divider(), "\t"))
	}
	for _, row := range tp.rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// divider returns one run of box-drawing dashes per column, as wide as the
// widest cell. tabwriter counts runes, so the divider does too.
func (tp *TablePrinter) divider() []string {
	parts := make([]string, len(tp.headers))
	for i, h := range tp.headers {
		width := utf8.RuneCountInString(h)
		for _, row := range tp.rows {
			width = max(width, utf8.RuneCountInString(row[i]))
		}
		parts[i] = strings.Repeat("─", width)
	}
	return parts
}

// normalizeRow pads or truncates a row to match the number of headers.
func (tp *TablePrinter) normalizeRow(row []string) []string {
	cols := make([]string, len(tp.headers))
	copy(cols, row)
	return cols
}
