package parser

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/xuri/excelize/v2"
)

// LoadWorkbook copies every sheet of f into memory in workbook order.
func LoadWorkbook(f *excelize.File, bookName string, includeLinks bool) (*models.Workbook, error) {
	wb := &models.Workbook{BookName: bookName}
	for _, sheetName := range f.GetSheetList() {
		sheet, err := LoadSheet(f, sheetName, includeLinks)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheetName, err)
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	log.Debug().
		Str("book", bookName).
		Int("sheets", len(wb.Sheets)).
		Msg("Loaded workbook")
	return wb, nil
}

// LoadSheet reads the formatted and the stored cell values of one sheet.
// When includeLinks is set, hyperlink targets of non-empty cells are kept too.
func LoadSheet(f *excelize.File, sheetName string, includeLinks bool) (models.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return models.Sheet{}, err
	}

	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Sheet{}, err
	}

	sheet := models.Sheet{Name: sheetName, Rows: rows, Raw: raw}
	if !includeLinks {
		return sheet, nil
	}

	links := make(map[string]string)
	for rowIdx, row := range rows {
		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				continue
			}
			hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
			if err == nil && hasLink && target != "" {
				links[cellName] = target
			}
		}
	}
	if len(links) > 0 {
		sheet.Links = links
	}
	return sheet, nil
}

// cellName converts 1-based coordinates to "E4" form; invalid input yields "".
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}

// columnName converts a 1-based column number to letters; invalid input yields "".
func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return ""
	}
	return name
}
