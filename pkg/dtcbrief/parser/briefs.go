package parser

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

// Labels every weekly sheet must carry in its label column.
const (
	LabelDateOfSend   = "Date of Send"
	LabelCampaignName = "Campaign Name"
)

const (
	labelScanRows    = 54
	firstBriefColumn = 4 // D
	featuredScanRows = 49
	smsCopyFirstRow  = 44
	smsCopyLastRow   = 50
	assetRowSpan     = 5
)

// ExtractOptions tunes record extraction.
type ExtractOptions struct {
	// ReferenceYear completes header due dates written without a year.
	// If zero, the current year is used.
	ReferenceYear int
}

func (o ExtractOptions) year() int {
	if o.ReferenceYear > 0 {
		return o.ReferenceYear
	}
	return time.Now().Year()
}

// labelIndex maps rows to the label found in column B or C. Column C wins
// when both are filled.
type labelIndex struct {
	rows   []int
	labels map[int]string
}

func indexLabels(sheet models.Sheet) labelIndex {
	ix := labelIndex{labels: make(map[int]string)}
	last := min(sheet.MaxRow(), labelScanRows)
	for row := 1; row <= last; row++ {
		for _, col := range []int{2, 3} {
			if v := sheet.Cell(row, col); v != "" {
				ix.labels[row] = v
			}
		}
		if _, ok := ix.labels[row]; ok {
			ix.rows = append(ix.rows, row)
		}
	}
	return ix
}

// find returns the first row whose label contains keyword, case-insensitively, or 0.
func (ix labelIndex) find(keyword string) int {
	keyword = strings.ToLower(keyword)
	for _, row := range ix.rows {
		if strings.Contains(strings.ToLower(ix.labels[row]), keyword) {
			return row
		}
	}
	return 0
}

func (ix labelIndex) label(row int) string {
	return ix.labels[row]
}

// briefRows holds the label rows resolved for one weekly sheet.
type briefRows struct {
	dateOfSend, timeOfSend, campaignType, campaignName, overview int
	promo, offer, coupon                                         int
	dam, hero, special, inventory, landing                       int
}

func resolveBriefRows(ix labelIndex) briefRows {
	r := briefRows{
		dateOfSend:   ix.find(LabelDateOfSend),
		timeOfSend:   ix.find("Time of Send"),
		campaignType: ix.find("Campaign Type"),
		campaignName: ix.find(LabelCampaignName),
		overview:     ix.find("Overview"),
		promo:        ix.find("Promo"),
		offer:        ix.find("Offer"),
		coupon:       ix.find("Coupon Code"),
		dam:          ix.find("DAM Assets"),
		hero:         ix.find("Hero Product URL"),
		special:      ix.find("makes this product special"),
		inventory:    ix.find("Inventory In House"),
		landing:      ix.find("Landing Page"),
	}
	if r.coupon == 0 {
		r.coupon = ix.find("Coupon")
	}
	return r
}

// ExtractBriefs reads the email brief columns of a weekly sheet.
// Labels live in columns B/C and every column from D onward with a send date
// or a campaign name is one brief. A sheet without the required labels yields
// a SchemaMismatchError.
func ExtractBriefs(ws models.WeekSheet, opts ExtractOptions) ([]models.RawRecord, error) {
	sheet := ws.Sheet
	ix := indexLabels(sheet)
	rows := resolveBriefRows(ix)

	var missing []string
	if rows.dateOfSend == 0 {
		missing = append(missing, LabelDateOfSend)
	}
	if rows.campaignName == 0 {
		missing = append(missing, LabelCampaignName)
	}
	if len(missing) > 0 {
		return nil, &models.SchemaMismatchError{Sheet: sheet.Name, Missing: missing}
	}

	dueFallback := headerDueDate(sheet, opts.year())
	lastCol := lastUsedColumn(sheet)

	var records []models.RawRecord
	for col := firstBriefColumn; col <= lastCol; col++ {
		if sheet.Cell(rows.dateOfSend, col) == "" && sheet.Cell(rows.campaignName, col) == "" {
			continue
		}
		records = append(records, extractBrief(ws, ix, rows, col, dueFallback))
	}

	log.Debug().
		Str("sheet", sheet.Name).
		Str("range", DataRange(sheet)).
		Int("briefs", len(records)).
		Msg("Extracted email briefs")
	return records, nil
}

func extractBrief(ws models.WeekSheet, ix labelIndex, rows briefRows, col int, dueFallback models.Date) models.RawRecord {
	sheet := ws.Sheet
	rec := models.RawRecord{
		Kind:        models.RecordBrief,
		Sheet:       sheet.Name,
		Week:        ws.Label,
		Cell:        "column " + columnName(col),
		Fields:      make(map[string]string),
		DueFallback: dueFallback,
	}

	set := func(field string, row int) {
		if row == 0 {
			return
		}
		if v := sheet.Cell(row, col); v != "" {
			rec.Fields[field] = v
		}
	}
	// URL cells often show a caption; the hyperlink target is what the task needs.
	setURL := func(field string, row int) {
		if row == 0 {
			return
		}
		if link := sheet.Link(cellName(col, row)); link != "" {
			rec.Fields[field] = link
			return
		}
		set(field, row)
	}

	if v := dateCell(sheet, rows.dateOfSend, col); v != "" {
		rec.Fields[models.FieldDateOfSend] = v
	}
	set(models.FieldTimeOfSend, rows.timeOfSend)
	set(models.FieldCampaignType, rows.campaignType)
	set(models.FieldCampaignName, rows.campaignName)
	set(models.FieldOverview, rows.overview)
	set(models.FieldPromo, rows.promo)
	set(models.FieldOffer, rows.offer)
	set(models.FieldCouponCode, rows.coupon)
	set(models.FieldDAMAssets, rows.dam)
	setURL(models.FieldHeroURL, rows.hero)
	set(models.FieldSpecial, rows.special)
	set(models.FieldInventory, rows.inventory)
	setURL(models.FieldLandingPage, rows.landing)

	// The day name sits directly under the send date in an unlabeled row.
	dayRow := rows.dateOfSend + 1
	if lbl := strings.ToLower(ix.label(dayRow)); lbl == "" || strings.Contains(lbl, "day") {
		set(models.FieldDayOfWeek, dayRow)
	}

	for field, ok := range extractAssets(sheet, rows.overview, col) {
		if ok {
			rec.Fields[field] = "yes"
		}
	}

	rec.Featured = extractFeatured(sheet, col)

	if row := scanLabel(sheet, "SMS", smsCopyFirstRow, min(sheet.MaxRow(), smsCopyLastRow)); row > 0 {
		set(models.FieldSMSCopy, row)
	}

	return rec
}

// extractAssets reads the Email / SMS / Site Banner flags listed below the overview.
func extractAssets(sheet models.Sheet, overviewRow, col int) map[string]bool {
	first, last := 10, 15
	if overviewRow > 0 {
		first, last = overviewRow+1, overviewRow+assetRowSpan
	}
	assets := make(map[string]bool)
	for row := first; row <= last; row++ {
		lbl := firstLabel(sheet, row)
		if lbl == "" {
			continue
		}
		if !strings.EqualFold(sheet.Cell(row, col), "yes") {
			continue
		}
		switch lbl = strings.ToLower(lbl); {
		case lbl == "email":
			assets[models.FieldAssetEmail] = true
		case lbl == "sms":
			assets[models.FieldAssetSMS] = true
		case strings.Contains(lbl, "site banner"):
			assets[models.FieldAssetBanner] = true
		}
	}
	return assets
}

// extractFeatured collects "Featured Product N" entries from column B, each
// with its URL on the following row.
func extractFeatured(sheet models.Sheet, col int) []models.FeaturedProduct {
	var products []models.FeaturedProduct
	last := min(sheet.MaxRow(), featuredScanRows)
	for row := 1; row <= last; row++ {
		lbl := strings.ToLower(sheet.Cell(row, 2))
		if !strings.Contains(lbl, "featured product") || strings.Contains(lbl, "url") {
			continue
		}
		name := sheet.Cell(row, col)
		if name == "" || strings.EqualFold(name, "NO ADDITIONAL PRODUCTS") {
			continue
		}
		url := sheet.Link(cellName(col, row+1))
		if url == "" {
			url = sheet.Cell(row+1, col)
		}
		products = append(products, models.FeaturedProduct{Name: name, URL: url})
	}
	return products
}

// firstLabel returns the first non-empty value of columns B and C.
func firstLabel(sheet models.Sheet, row int) string {
	for _, col := range []int{2, 3} {
		if v := sheet.Cell(row, col); v != "" {
			return v
		}
	}
	return ""
}

// scanLabel finds the first row in [first, last] whose B or C label contains keyword.
func scanLabel(sheet models.Sheet, keyword string, first, last int) int {
	keyword = strings.ToLower(keyword)
	for row := first; row <= last; row++ {
		for _, col := range []int{2, 3} {
			if strings.Contains(strings.ToLower(sheet.Cell(row, col)), keyword) {
				return row
			}
		}
	}
	return 0
}

// headerDueDate finds a "DUE m/d" note in the top-left corner of the sheet,
// falling back to D1.
func headerDueDate(sheet models.Sheet, year int) models.Date {
	for row := 1; row <= 4; row++ {
		for col := 1; col <= 4; col++ {
			v := sheet.Cell(row, col)
			if !strings.Contains(strings.ToUpper(v), "DUE") {
				continue
			}
			if due, ok := ParseHeaderDue(v, year); ok {
				return due
			}
		}
	}
	if due, ok := ParseHeaderDue(sheet.Cell(1, 4), year); ok {
		return due
	}
	return ""
}
