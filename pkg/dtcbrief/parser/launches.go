package parser

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

const launchHeaderCols = 14

// launchColumns maps normalised header text to a record field. The PB layout
// uses six columns; TGW adds Sport, SKET Task and PO #.
var launchColumns = map[string]string{
	"subcat(s)":      models.FieldSubcat,
	"subcat":         models.FieldSubcat,
	"description":    models.FieldDescription,
	"launch date":    models.FieldLaunchDate,
	"sport":          models.FieldSport,
	"priority (a-d)": models.FieldLaunchPrio,
	"priority":       models.FieldLaunchPrio,
	"notes":          models.FieldNotes,
	"po #":           models.FieldPONumber,
	"po":             models.FieldPONumber,
	"sket task":      models.FieldSKETTask,
	"sket":           models.FieldSKETTask,
}

var requiredLaunchColumns = []struct {
	field, label string
}{
	{models.FieldDescription, "Description"},
	{models.FieldLaunchDate, "Launch Date"},
}

// ExtractLaunches reads the row-oriented Product Launch Calendar. Row 1 is
// the header; Description and Launch Date columns are required.
func ExtractLaunches(sheet models.Sheet) ([]models.RawRecord, error) {
	cols := make(map[string]int)
	var duplicated []string
	for col := 1; col <= min(sheet.MaxCol(), launchHeaderCols); col++ {
		header := strings.TrimRight(strings.ToLower(sheet.Cell(1, col)), ":")
		field, ok := launchColumns[header]
		if !ok {
			continue
		}
		if _, seen := cols[field]; seen {
			duplicated = append(duplicated, sheet.Cell(1, col))
			continue
		}
		cols[field] = col
	}

	var missing []string
	for _, req := range requiredLaunchColumns {
		if _, ok := cols[req.field]; !ok {
			missing = append(missing, req.label)
		}
	}
	if len(missing) > 0 || len(duplicated) > 0 {
		return nil, &models.SchemaMismatchError{Sheet: sheet.Name, Missing: missing, Extra: duplicated}
	}

	lastCol := sheet.MaxCol()
	var records []models.RawRecord
	for row := 2; row <= sheet.MaxRow(); row++ {
		desc := sheet.Cell(row, cols[models.FieldDescription])
		launch := sheet.Cell(row, cols[models.FieldLaunchDate])
		if desc == "" && launch == "" {
			if n := countNonEmptyCells(sheet, row, 1, lastCol); n > 0 {
				log.Debug().
					Str("sheet", sheet.Name).
					Int("row", row).
					Int("cells", n).
					Msg("Skipping launch row without description or launch date")
			}
			continue
		}

		rec := models.RawRecord{
			Kind:   models.RecordLaunch,
			Sheet:  sheet.Name,
			Cell:   fmt.Sprintf("row %d", row),
			Fields: make(map[string]string),
		}
		for field, col := range cols {
			v := sheet.Cell(row, col)
			if field == models.FieldLaunchDate {
				v = dateCell(sheet, row, col)
			}
			if v != "" {
				rec.Fields[field] = v
			}
		}
		records = append(records, rec)
	}

	log.Debug().
		Str("sheet", sheet.Name).
		Int("launches", len(records)).
		Msg("Extracted product launches")
	return records, nil
}
