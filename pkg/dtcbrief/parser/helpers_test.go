package parser

import (
	"testing"
	"time"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/xuri/excelize/v2"
)

// newSheet builds an in-memory sheet from cell values and optional hyperlinks
// and loads it back the way a real workbook is read.
func newSheet(t *testing.T, name string, cells, links map[string]string) models.Sheet {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if name != "Sheet1" {
		if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("Failed to create sheet: %v", err)
		}
	}
	for cell, value := range cells {
		if err := f.SetCellValue(name, cell, value); err != nil {
			t.Fatalf("Failed to set %s: %v", cell, err)
		}
	}
	for cell, target := range links {
		if err := f.SetCellHyperLink(name, cell, target, "External"); err != nil {
			t.Fatalf("Failed to link %s: %v", cell, err)
		}
	}

	sheet, err := LoadSheet(f, name, len(links) > 0)
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	return sheet
}

// weeklyCells is a two-brief weekly sheet: column D is a promotion with SMS,
// column E a newsletter without.
func weeklyCells() map[string]string {
	return map[string]string{
		"D1":  "DUE 2/3 10 AM CT",
		"B2":  "Date of Send",
		"D2":  "2/17/2025",
		"E2":  "2/19/2025",
		"D3":  "Monday",
		"E3":  "Wednesday",
		"B4":  "Time of Send",
		"D4":  "10:00 AM",
		"B5":  "Campaign Type",
		"D5":  "Promotions",
		"E5":  "Story Telling",
		"B6":  "Campaign Name",
		"D6":  "Spring Sale",
		"E6":  "Team Spotlight",
		"B7":  "Overview",
		"D7":  "Kick off the spring season.",
		"C8":  "Email",
		"D8":  "yes",
		"E8":  "Yes",
		"C9":  "SMS",
		"D9":  "yes",
		"E9":  "no",
		"C10": "Site Banner",
		"E10": "yes",
		"B12": "Promo",
		"D12": "20% off",
		"B14": "Coupon Code",
		"D14": "SPRING20",
		"B16": "Featured Product 1",
		"D16": "Game Jersey",
		"E16": "NO ADDITIONAL PRODUCTS",
		"B17": "Featured Product 1 URL",
		"D17": "https://example.com/jersey",
		"B20": "Landing Page",
		"D20": "Spring landing",
		"B45": "SMS Copy",
		"D45": "Spring sale starts now!",
	}
}

func weekSheet(sheet models.Sheet) models.WeekSheet {
	week, label := WeekLabel(sheet.Name)
	return models.WeekSheet{Week: week, Label: label, Sheet: sheet}
}

// setDateCell stores t as a real date cell shown with the given number format.
func setDateCell(t *testing.T, f *excelize.File, sheet, cell string, value time.Time, numFmt string) {
	t.Helper()
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		t.Fatalf("Failed to set %s: %v", cell, err)
	}
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		t.Fatalf("Failed to create style %q: %v", numFmt, err)
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		t.Fatalf("Failed to style %s: %v", cell, err)
	}
}
