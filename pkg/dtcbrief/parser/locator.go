// Package parser turns DTC calendar workbooks into raw records.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// ErrUnknownWeek indicates a requested week sheet that the workbook lacks.
var ErrUnknownWeek = errors.New("unknown week sheet")

// LaunchSheetName is the sheet holding the product launch calendar.
const LaunchSheetName = "Product Launch Calendar"

// Matches "Wk6", "wk12" and brand-prefixed tabs like "PB_wk2_12".
var weeklyPattern = regexp.MustCompile(`(?i)(^Wk\d+$|_wk\d+)`)

var weekNumberPattern = regexp.MustCompile(`(?i)wk\s*(\d+)`)

// skipSheets are never treated as weekly sheets even if their name matches.
var skipSheets = map[string]bool{
	LaunchSheetName:      true,
	"Content Calendar":   true,
	"Template":           true,
	"Sheet3":             true,
	"Marketing Pipeline": true,
}

// IsWeeklySheet reports whether a sheet name follows the weekly naming convention.
func IsWeeklySheet(name string) bool {
	if skipSheets[name] {
		return false
	}
	return weeklyPattern.MatchString(name)
}

// WeekLabel parses the week number from a sheet name and returns it with its
// display label ("Week 6"). Names without a number label as themselves.
func WeekLabel(name string) (int, string) {
	m := weekNumberPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, name
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, name
	}
	return n, fmt.Sprintf("Week %d", n)
}

// AvailableWeeks lists the weekly sheet names of a workbook, sorted.
func AvailableWeeks(wb *models.Workbook) []string {
	var names []string
	for _, name := range wb.SheetNames() {
		if IsWeeklySheet(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// LocateWeekSheets selects the weekly sheets of wb in workbook order.
// When weeks is non-empty only those sheet names are selected, and each of
// them must exist as a weekly sheet.
// It returns an EmptyInputError when nothing is selected.
func LocateWeekSheets(wb *models.Workbook, weeks []string) ([]models.WeekSheet, error) {
	names := wb.SheetNames()
	if len(names) == 0 {
		return nil, &models.EmptyInputError{BookName: wb.BookName}
	}

	wanted := make(map[string]bool, len(weeks))
	for _, w := range weeks {
		wanted[w] = true
	}

	var selected []models.WeekSheet
	for _, sheet := range wb.Sheets {
		if !IsWeeklySheet(sheet.Name) {
			continue
		}
		if len(wanted) > 0 {
			if !wanted[sheet.Name] {
				continue
			}
			delete(wanted, sheet.Name)
		}
		week, label := WeekLabel(sheet.Name)
		selected = append(selected, models.WeekSheet{Week: week, Label: label, Sheet: sheet})
	}

	if len(wanted) > 0 {
		missing := make([]string, 0, len(wanted))
		for w := range wanted {
			missing = append(missing, w)
		}
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %v", ErrUnknownWeek, missing)
	}
	if len(selected) == 0 {
		return nil, &models.EmptyInputError{BookName: wb.BookName, Sheets: names}
	}

	log.Debug().
		Str("book", wb.BookName).
		Int("selected", len(selected)).
		Int("sheets", len(names)).
		Msg("Located weekly sheets")
	return selected, nil
}
