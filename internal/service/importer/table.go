package importer

import (
	"fmt"
	"strings"
)

// Table is a sheet with resolved column names. Rows may be ragged because
// spreadsheet readers drop trailing empty cells.
type Table struct {
	Columns []string
	Rows    [][]string

	colIndex map[string]int
}

// headerScanLimit caps how many leading data rows are inspected when the
// sheet's first row does not look like a header.
const headerScanLimit = 5

// NewTable turns a raw grid into a table with usable column names. The first
// row is taken as the header unless any of its labels is blank or purely
// numeric; in that case the next few rows are scanned for a row that is mostly
// text, which is promoted to the header (dropping it and everything above).
// If nothing qualifies, columns get positional placeholder names.
func NewTable(grid [][]string) *Table {
	if len(grid) == 0 {
		return newTable(nil, nil)
	}

	header := grid[0]
	if headerLooksReliable(header) {
		return newTable(trimAll(header), grid[1:])
	}

	data := grid[1:]
	for i := 0; i < len(data) && i < headerScanLimit; i++ {
		if textCellShare(data[i]) >= 0.6 {
			columns := make([]string, len(data[i]))
			for j, cell := range data[i] {
				cell = strings.TrimSpace(cell)
				if cell == "" {
					cell = fmt.Sprintf("Column_%d", j)
				}
				columns[j] = cell
			}
			return newTable(columns, data[i+1:])
		}
	}

	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := make([]string, width)
	for i := range columns {
		columns[i] = fmt.Sprintf("Column_%d", i)
	}
	return newTable(columns, data)
}

func newTable(columns []string, rows [][]string) *Table {
	t := &Table{Columns: columns, Rows: rows, colIndex: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := t.colIndex[c]; !ok {
			t.colIndex[c] = i
		}
	}
	return t
}

// Cell returns the value of the named column in the given row, or "" when the
// column is unknown or the row is too short.
func (t *Table) Cell(row []string, column string) string {
	idx, ok := t.colIndex[column]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Samples collects up to limit non-blank values per column, the input for
// content-shape classification.
func (t *Table) Samples(limit int) map[string][]string {
	samples := make(map[string][]string, len(t.Columns))
	for _, col := range t.Columns {
		var values []string
		for _, row := range t.Rows {
			if v := strings.TrimSpace(t.Cell(row, col)); v != "" {
				values = append(values, v)
			}
			if len(values) >= limit {
				break
			}
		}
		samples[col] = values
	}
	return samples
}

func headerLooksReliable(header []string) bool {
	if len(header) == 0 {
		return false
	}
	for _, cell := range header {
		cell = strings.TrimSpace(cell)
		if cell == "" || isDigits(cell) {
			return false
		}
	}
	return true
}

func textCellShare(row []string) float64 {
	if len(row) == 0 {
		return 0
	}
	text := 0
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			text++
		}
	}
	return float64(text) / float64(len(row))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(c)
	}
	return out
}
