package parser

import (
	"errors"
	"testing"
	"time"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractBriefs(t *testing.T) {
	sheet := newSheet(t, "Wk6", weeklyCells(), nil)

	records, err := ExtractBriefs(weekSheet(sheet), ExtractOptions{ReferenceYear: 2025})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 briefs, got %d", len(records))
	}

	promo := records[0]
	if promo.Kind != models.RecordBrief {
		t.Errorf("Expected brief record, got %q", promo.Kind)
	}
	if promo.Cell != "column D" || promo.Week != "Week 6" || promo.Sheet != "Wk6" {
		t.Errorf("Unexpected location: sheet=%q week=%q cell=%q", promo.Sheet, promo.Week, promo.Cell)
	}
	if promo.DueFallback != "02/03/2025" {
		t.Errorf("Expected header due date 02/03/2025, got %q", promo.DueFallback)
	}

	fields := []struct {
		field    string
		expected string
	}{
		{models.FieldDateOfSend, "2/17/2025"},
		{models.FieldDayOfWeek, "Monday"},
		{models.FieldTimeOfSend, "10:00 AM"},
		{models.FieldCampaignType, "Promotions"},
		{models.FieldCampaignName, "Spring Sale"},
		{models.FieldOverview, "Kick off the spring season."},
		{models.FieldAssetEmail, "yes"},
		{models.FieldAssetSMS, "yes"},
		{models.FieldAssetBanner, ""},
		{models.FieldPromo, "20% off"},
		{models.FieldOffer, ""},
		{models.FieldCouponCode, "SPRING20"},
		{models.FieldLandingPage, "Spring landing"},
		{models.FieldSMSCopy, "Spring sale starts now!"},
	}
	for _, tt := range fields {
		if got := promo.Get(tt.field); got != tt.expected {
			t.Errorf("Field %s = %q, want %q", tt.field, got, tt.expected)
		}
	}

	if len(promo.Featured) != 1 {
		t.Fatalf("Expected 1 featured product, got %d", len(promo.Featured))
	}
	if promo.Featured[0].Name != "Game Jersey" || promo.Featured[0].URL != "https://example.com/jersey" {
		t.Errorf("Unexpected featured product: %+v", promo.Featured[0])
	}

	story := records[1]
	if story.Cell != "column E" {
		t.Errorf("Expected column E, got %q", story.Cell)
	}
	if story.Get(models.FieldAssetSMS) != "" {
		t.Errorf("Expected no SMS asset, got %q", story.Get(models.FieldAssetSMS))
	}
	if story.Get(models.FieldAssetBanner) != "yes" || story.Get(models.FieldAssetEmail) != "yes" {
		t.Errorf("Expected email and banner assets, got %v", story.Fields)
	}
	if len(story.Featured) != 0 {
		t.Errorf("Expected placeholder product to be skipped, got %+v", story.Featured)
	}
	if story.Get(models.FieldSMSCopy) != "" {
		t.Errorf("Expected no SMS copy, got %q", story.Get(models.FieldSMSCopy))
	}
}

func TestExtractBriefsSkipsEmptyColumns(t *testing.T) {
	cells := map[string]string{
		"B2": "Date of Send",
		"B6": "Campaign Name",
		"D2": "2/17/2025",
		"D6": "Spring Sale",
		// Column E has notes only; column F has a name but no date.
		"E7": "draft",
		"F6": "Team Spotlight",
	}
	records, err := ExtractBriefs(weekSheet(newSheet(t, "Wk7", cells, nil)), ExtractOptions{ReferenceYear: 2025})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 briefs, got %d", len(records))
	}
	if records[0].Cell != "column D" || records[1].Cell != "column F" {
		t.Errorf("Unexpected columns: %q, %q", records[0].Cell, records[1].Cell)
	}
	if records[1].Get(models.FieldDateOfSend) != "" {
		t.Errorf("Expected no send date for column F, got %q", records[1].Get(models.FieldDateOfSend))
	}
}

func TestExtractBriefsLabelColumnC(t *testing.T) {
	cells := map[string]string{
		"B2": "Send",
		"C2": "Date of Send",
		"C3": "Campaign Name",
		"D2": "3/3/2025",
		"D3": "Launch Day",
	}
	records, err := ExtractBriefs(weekSheet(newSheet(t, "Wk9", cells, nil)), ExtractOptions{ReferenceYear: 2025})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	if len(records) != 1 || records[0].Get(models.FieldCampaignName) != "Launch Day" {
		t.Errorf("Unexpected records: %+v", records)
	}
	// The row under Date of Send is labeled, so it is not a day-of-week row.
	if got := records[0].Get(models.FieldDayOfWeek); got != "" {
		t.Errorf("Expected no day of week, got %q", got)
	}
}

func TestExtractBriefsMissingLabels(t *testing.T) {
	tests := []struct {
		name    string
		cells   map[string]string
		missing []string
	}{
		{
			name:    "no labels",
			cells:   map[string]string{"D2": "2/17/2025"},
			missing: []string{LabelDateOfSend, LabelCampaignName},
		},
		{
			name:    "no campaign name",
			cells:   map[string]string{"B2": "Date of Send", "D2": "2/17/2025"},
			missing: []string{LabelCampaignName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractBriefs(weekSheet(newSheet(t, "Wk8", tt.cells, nil)), ExtractOptions{ReferenceYear: 2025})
			var schema *models.SchemaMismatchError
			if !errors.As(err, &schema) {
				t.Fatalf("Expected SchemaMismatchError, got %v", err)
			}
			if schema.Sheet != "Wk8" {
				t.Errorf("Expected sheet Wk8, got %q", schema.Sheet)
			}
			if len(schema.Missing) != len(tt.missing) {
				t.Fatalf("Missing = %v, want %v", schema.Missing, tt.missing)
			}
			for i := range tt.missing {
				if schema.Missing[i] != tt.missing[i] {
					t.Errorf("Missing[%d] = %q, want %q", i, schema.Missing[i], tt.missing[i])
				}
			}
		})
	}
}

func TestExtractBriefsPrefersLinkTargets(t *testing.T) {
	cells := weeklyCells()
	cells["B18"] = "Hero Product URL"
	cells["D18"] = "Hero page"
	cells["D17"] = "Jersey page"
	links := map[string]string{
		"D17": "https://example.com/jersey-link",
		"D18": "https://example.com/hero",
	}

	records, err := ExtractBriefs(weekSheet(newSheet(t, "Wk6", cells, links)), ExtractOptions{ReferenceYear: 2025})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	if got := records[0].Get(models.FieldHeroURL); got != "https://example.com/hero" {
		t.Errorf("Expected hero link target, got %q", got)
	}
	if got := records[0].Featured[0].URL; got != "https://example.com/jersey-link" {
		t.Errorf("Expected featured link target, got %q", got)
	}
}

func TestHeaderDueDate(t *testing.T) {
	tests := []struct {
		name     string
		cells    map[string]string
		expected models.Date
	}{
		{"D1 note", map[string]string{"D1": "DUE 2/3 10 AM CT"}, "02/03/2025"},
		{"corner note", map[string]string{"A2": "Copy DUE 1/27"}, "01/27/2025"},
		{"no note", map[string]string{"A1": "Week 8"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headerDueDate(newSheet(t, "Wk8", tt.cells, nil), 2025); got != tt.expected {
				t.Errorf("headerDueDate() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestExtractBriefsDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "B2", "Date of Send")
	f.SetCellValue("Sheet1", "B6", "Campaign Name")
	f.SetCellValue("Sheet1", "D6", "Spring Sale")
	setDateCell(t, f, "Sheet1", "D2", time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), "m/d")

	sheet, err := LoadSheet(f, "Sheet1", false)
	if err != nil {
		t.Fatalf("LoadSheet failed: %v", err)
	}
	if got := sheet.Cell(2, 4); got != "2/17" {
		t.Fatalf("Expected the cell to display as 2/17, got %q", got)
	}

	records, err := ExtractBriefs(models.WeekSheet{Week: 6, Label: "Week 6", Sheet: sheet}, ExtractOptions{ReferenceYear: 2025})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 brief, got %d", len(records))
	}
	if got := records[0].Get(models.FieldDateOfSend); got != "02/17/2025" {
		t.Errorf("Date of send = %q, want 02/17/2025", got)
	}
}

func TestExtractBriefsDefaultReferenceYear(t *testing.T) {
	sheet := newSheet(t, "Wk6", weeklyCells(), nil)

	records, err := ExtractBriefs(weekSheet(sheet), ExtractOptions{})
	if err != nil {
		t.Fatalf("ExtractBriefs failed: %v", err)
	}
	due, err := records[0].DueFallback.Time()
	if err != nil {
		t.Fatalf("Expected a header due date, got %q", records[0].DueFallback)
	}
	if due.Year() != time.Now().Year() {
		t.Errorf("Header due year = %d, want %d", due.Year(), time.Now().Year())
	}
}
