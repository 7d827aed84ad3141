package parser

import (
	"fmt"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// DataRange returns the bounding range of non-empty cells (e.g. "A1:H40"),
// or "" for an empty sheet.
func DataRange(sheet models.Sheet) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(sheet.Rows)
	if minRow < 0 {
		return ""
	}
	return fmt.Sprintf("%s:%s", cellName(minCol+1, minRow+1), cellName(maxCol+1, maxRow+1))
}

// lastUsedColumn returns the 1-based index of the rightmost non-empty column, or 0.
func lastUsedColumn(sheet models.Sheet) int {
	_, _, _, maxCol := findDataBounds(sheet.Rows)
	return maxCol + 1
}

// findDataBounds finds the 0-based bounding box of non-empty cells.
// All bounds are -1 when no cell has data.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells of one 1-based row between two columns.
func countNonEmptyCells(sheet models.Sheet, row, fromCol, toCol int) int {
	count := 0
	for col := fromCol; col <= toCol; col++ {
		if sheet.Cell(row, col) != "" {
			count++
		}
	}
	return count
}
