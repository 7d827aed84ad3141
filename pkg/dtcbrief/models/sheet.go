package models

import "strings"

// Sheet is a named grid of cell values as displayed in Excel.
type Sheet struct {
	// Name is the sheet tab name.
	Name string `json:"name"`
	// Rows holds cell values; Rows[0][0] is A1. Rows may be ragged.
	Rows [][]string `json:"rows,omitempty"`
	// Raw holds the stored cell values, e.g. date serials, laid out like Rows.
	// It may be nil for sheets built in memory.
	Raw [][]string `json:"raw,omitempty"`
	// Links maps cell name (e.g. "E21") to hyperlink target.
	Links map[string]string `json:"links,omitempty"`
}

// Link returns the hyperlink target stored for a cell name, or "".
func (s Sheet) Link(cell string) string {
	return s.Links[cell]
}

// Cell returns the trimmed value at a 1-based row and column, or "" when the
// coordinates fall outside the grid.
func (s Sheet) Cell(row, col int) string {
	return gridCell(s.Rows, row, col)
}

func gridCell(grid [][]string, row, col int) string {
	if row < 1 || col < 1 || row > len(grid) {
		return ""
	}
	r := grid[row-1]
	if col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}

// RawCell returns the trimmed stored value at a 1-based row and column, or ""
// when no raw grid was loaded.
func (s Sheet) RawCell(row, col int) string {
	return gridCell(s.Raw, row, col)
}

// MaxRow returns the number of rows in the grid.
func (s Sheet) MaxRow() int {
	return len(s.Rows)
}

// MaxCol returns the width of the widest row.
func (s Sheet) MaxCol() int {
	max := 0
	for _, r := range s.Rows {
		if len(r) > max {
			max = len(r)
		}
	}
	return max
}

// WeekSheet is a sheet selected as one reporting period.
type WeekSheet struct {
	// Week is the period number parsed from the sheet name (0 if none).
	Week int `json:"week"`
	// Label is the display label used in task names and tags, e.g. "Week 6".
	Label string `json:"label"`
	// Sheet is the underlying grid.
	Sheet Sheet `json:"sheet"`
}

// Name returns the sheet tab name.
func (w WeekSheet) Name() string {
	return w.Sheet.Name
}
