package parser

import (
	"testing"
	"time"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/xuri/excelize/v2"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Date
		ok       bool
	}{
		{"2/17/2025", "02/17/2025", true},
		{"02/17/2025", "02/17/2025", true},
		{"2025-02-17", "02/17/2025", true},
		{"2025-02-17 00:00:00", "02/17/2025", true},
		{"2/17/25", "02/17/2025", true},
		{"17-Feb-25", "02/17/2025", true},
		{"February 17, 2025", "02/17/2025", true},
		{"45705", "02/17/2025", true},
		{"TBD", "", false},
		{"", "", false},
		{"0", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseDate(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestParseHeaderDue(t *testing.T) {
	tests := []struct {
		input    string
		expected models.Date
		ok       bool
	}{
		{"DUE 2/3 10 AM CT", "02/03/2025", true},
		{"DUE 12/30/2024", "12/30/2024", true},
		{"DUE 1/6/26 EOD", "01/06/2026", true},
		{"DUE 2/30", "", false},
		{"DUE TBD", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseHeaderDue(tt.input, 2025)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseHeaderDue(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestDateCellIgnoresDisplayFormat(t *testing.T) {
	formats := []string{"m/d", "d-mmm", "mmm d", "dddd, mmmm d", "m/d/yyyy"}

	f := excelize.NewFile()
	defer f.Close()
	for i, numFmt := range formats {
		setDateCell(t, f, "Sheet1", cellName(1, i+1), time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), numFmt)
	}
	f.SetCellValue("Sheet1", "B1", "2/19/2025")
	f.SetCellValue("Sheet1", "B2", "TBD")

	sheet, err := LoadSheet(f, "Sheet1", false)
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}

	for i, numFmt := range formats {
		if got := dateCell(sheet, i+1, 1); got != "02/17/2025" {
			t.Errorf("dateCell with format %q = %q (shown as %q), want 02/17/2025", numFmt, got, sheet.Cell(i+1, 1))
		}
	}
	if got := dateCell(sheet, 1, 2); got != "2/19/2025" {
		t.Errorf("Expected typed date text to be kept, got %q", got)
	}
	if got := dateCell(sheet, 2, 2); got != "TBD" {
		t.Errorf("Expected text cell to be kept, got %q", got)
	}
	if got := dateCell(sheet, 9, 9); got != "" {
		t.Errorf("Expected empty cell, got %q", got)
	}
}
