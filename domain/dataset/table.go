package dataset

import (
	"fmt"
	"strings"

	"namecorrector/domain/core"
)

// Table is a rectangular sheet: one header per column and every row exactly
// len(Headers) cells wide.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// NewTable builds a Table from raw header and data rows. Headers are trimmed,
// blank headers become "Unnamed: <index>" and repeated headers get a ".<n>"
// suffix. Short rows are padded and cells past the last header get their own
// unnamed column.
func NewTable(headerRow []string, dataRows [][]string) (*Table, error) {
	width := len(headerRow)
	for _, row := range dataRows {
		if len(row) > width {
			width = len(row)
		}
	}
	if width == 0 {
		return nil, core.ErrEmptyTable
	}

	raw := make([]string, width)
	copy(raw, headerRow)

	t := &Table{
		Headers: NormalizeHeaders(raw),
		Rows:    make([][]string, len(dataRows)),
	}
	for i, row := range dataRows {
		cells := make([]string, width)
		copy(cells, row)
		t.Rows[i] = cells
	}
	return t, nil
}

// NormalizeHeaders trims, names and de-duplicates headers
func NormalizeHeaders(raw []string) []string {
	headers := make([]string, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, h := range raw {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		base := h
		for n := 1; seen[h]; n++ {
			h = fmt.Sprintf("%s.%d", base, n)
		}
		seen[h] = true
		headers[i] = h
	}
	return headers
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// ColumnIndex returns the position of a header, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// Column returns the values of one column in row order
func (t *Table) Column(name string) ([]string, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w %q", core.ErrColumnNotFound, name)
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Head returns a table holding at most n leading rows; the rows are shared
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= len(t.Rows) {
		return t
	}
	return &Table{Headers: t.Headers, Rows: t.Rows[:n]}
}

// Equal reports whether both tables hold the same headers and cells in order
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.Headers) != len(other.Headers) || len(t.Rows) != len(other.Rows) {
		return false
	}
	for i := range t.Headers {
		if t.Headers[i] != other.Headers[i] {
			return false
		}
	}
	for i := range t.Rows {
		if len(t.Rows[i]) != len(other.Rows[i]) {
			return false
		}
		for j := range t.Rows[i] {
			if t.Rows[i][j] != other.Rows[i][j] {
				return false
			}
		}
	}
	return true
}
