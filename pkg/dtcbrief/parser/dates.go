package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are tried in order. Excel renders dates with the cell's number
// format, so both typed text and the common built-in formats appear here.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"2006-01-02",
	"1-2-2006",
	"1-2-06",
	"1/2/06",
	"1/2/06 15:04",
	"2-Jan-06",
	"2-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Monday, January 2, 2006",
}

// Excel serial day numbers outside this range are not treated as dates.
const (
	minSerialDate = 1
	maxSerialDate = 2958465
)

var headerDuePattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)

// ParseDate parses a cell value into a Date. It accepts the layouts above and
// raw Excel serial numbers.
func ParseDate(value string) (models.Date, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return models.NewDate(t), true
		}
	}
	return serialDate(value)
}

// serialDate converts an Excel serial day number such as "45705" or
// "45705.4166" into a Date.
func serialDate(value string) (models.Date, bool) {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil || serial < minSerialDate || serial > maxSerialDate {
		return "", false
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return "", false
	}
	return models.NewDate(t), true
}

// dateCell returns a date cell in DateLayout when its stored value is a date
// serial, whatever number format the sheet displays it with. Other cells
// return their displayed text.
func dateCell(sheet models.Sheet, row, col int) string {
	if d, ok := serialDate(sheet.RawCell(row, col)); ok {
		return string(d)
	}
	return sheet.Cell(row, col)
}

// ParseHeaderDue extracts a due date from header text like "DUE 2/3 10 AM CT".
// A missing year defaults to year; two-digit years are taken as 20xx.
func ParseHeaderDue(text string, year int) (models.Date, bool) {
	m := headerDuePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalises out-of-range values; reject them instead.
	if t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return models.NewDate(t), true
}
