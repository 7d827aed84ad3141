package models

// Canonical field names used in RawRecord.Fields.
const (
	FieldDateOfSend   = "date_of_send"
	FieldDayOfWeek    = "day_of_week"
	FieldTimeOfSend   = "time_of_send"
	FieldCampaignType = "campaign_type"
	FieldCampaignName = "campaign_name"
	FieldOverview     = "overview"
	FieldPromo        = "promo"
	FieldOffer        = "offer"
	FieldCouponCode   = "coupon_code"
	FieldDAMAssets    = "dam_assets"
	FieldHeroURL      = "hero_product_url"
	FieldSpecial      = "what_makes_it_special"
	FieldInventory    = "inventory_in_house"
	FieldLandingPage  = "landing_page"
	FieldSMSCopy      = "sms_copy"
	FieldAssetEmail   = "asset_email"
	FieldAssetSMS     = "asset_sms"
	FieldAssetBanner  = "asset_site_banner"
	FieldSubcat       = "subcat"
	FieldDescription  = "description"
	FieldLaunchDate   = "launch_date"
	FieldSport        = "sport"
	FieldLaunchPrio   = "launch_priority"
	FieldNotes        = "notes"
	FieldPONumber     = "po_number"
	FieldSKETTask     = "sket_task"
)

// RecordKind tells the transformer which layout a RawRecord came from.
type RecordKind string

const (
	// RecordBrief is one email brief column of a weekly sheet.
	RecordBrief RecordKind = "brief"
	// RecordLaunch is one row of the Product Launch Calendar.
	RecordLaunch RecordKind = "launch"
)

// FeaturedProduct is a product listed on an email brief.
type FeaturedProduct struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// RawRecord is one extracted unit of work before transformation.
type RawRecord struct {
	// Kind is the source layout.
	Kind RecordKind `json:"kind"`
	// Sheet is the source sheet name.
	Sheet string `json:"sheet"`
	// Week is the week label of the source sheet (empty for launches).
	Week string `json:"week,omitempty"`
	// Cell locates the record: a column letter for briefs, a row reference for launches.
	Cell string `json:"cell"`
	// Fields maps canonical field name to the trimmed cell value. Empty cells are omitted.
	Fields map[string]string `json:"fields"`
	// Featured lists featured products in sheet order.
	Featured []FeaturedProduct `json:"featured,omitempty"`
	// DueFallback is the sheet-level due date used when no send date is present.
	DueFallback Date `json:"due_fallback,omitempty"`
}

// Get returns a field value or "".
func (r RawRecord) Get(field string) string {
	return r.Fields[field]
}
