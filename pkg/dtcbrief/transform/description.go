package transform

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/models"
)

const (
	sectionPromotion     = "--- Promotion ---"
	sectionMerchandising = "--- Merchandising ---"
)

// briefView renders the description blocks of one email brief.
type briefView struct {
	rec   models.RawRecord
	start models.Date
}

func (b briefView) sendLine() string {
	send := "TBD"
	if !b.start.IsZero() {
		send = string(b.start)
	}
	day := b.rec.Get(models.FieldDayOfWeek)
	if day == "" {
		day = b.start.Weekday()
	}
	line := "Send Date: " + send
	if day != "" {
		line += " (" + day + ")"
	}
	if tos := b.rec.Get(models.FieldTimeOfSend); tos != "" {
		line += " " + tos
	}
	return line
}

func (b briefView) typeLine() string {
	campaignType := b.rec.Get(models.FieldCampaignType)
	if campaignType == "" {
		campaignType = "TBD"
	}
	return "Campaign Type: " + campaignType
}

func (b briefView) assets() []string {
	var assets []string
	if b.rec.Get(models.FieldAssetEmail) != "" {
		assets = append(assets, "Email")
	}
	if b.rec.Get(models.FieldAssetSMS) != "" {
		assets = append(assets, "SMS")
	}
	if b.rec.Get(models.FieldAssetBanner) != "" {
		assets = append(assets, "Site Banner")
	}
	return assets
}

func (b briefView) emailDescription() string {
	r := b.rec
	parts := []string{"== EMAIL BRIEF ==", b.sendLine(), b.typeLine()}
	addLine(&parts, "Overview", r.Get(models.FieldOverview))
	if assets := b.assets(); len(assets) > 0 {
		parts = append(parts, "Assets Needed: "+strings.Join(assets, ", "))
	}

	parts = append(parts, sectionPromotion)
	addLine(&parts, "Promo", r.Get(models.FieldPromo))
	addLine(&parts, "Offer", r.Get(models.FieldOffer))
	addLine(&parts, "Code", r.Get(models.FieldCouponCode))

	parts = append(parts, sectionMerchandising)
	addLine(&parts, "DAM Assets", r.Get(models.FieldDAMAssets))
	addLine(&parts, "Hero Product URL", r.Get(models.FieldHeroURL))
	addLine(&parts, "What Makes It Special", r.Get(models.FieldSpecial))
	addLine(&parts, "Inventory In House", r.Get(models.FieldInventory))
	addLine(&parts, "Landing Page", r.Get(models.FieldLandingPage))

	if len(r.Featured) > 0 {
		parts = append(parts, "Featured Products:")
		for _, p := range r.Featured {
			entry := fmt.Sprintf("  - %s", p.Name)
			if p.URL != "" {
				entry += fmt.Sprintf("\n    URL: %s", p.URL)
			}
			parts = append(parts, entry)
		}
	}

	return strings.Join(dropEmptySections(parts), "\n")
}

func (b briefView) smsDescription() string {
	r := b.rec
	parts := []string{"== SMS BRIEF ==", b.sendLine(), b.typeLine()}
	addLine(&parts, "Overview", r.Get(models.FieldOverview))
	addLine(&parts, "Landing Page", r.Get(models.FieldLandingPage))
	smsCopy := r.Get(models.FieldSMSCopy)
	if smsCopy == "" {
		smsCopy = "(to be added)"
	}
	parts = append(parts, "SMS Copy: "+smsCopy)
	return strings.Join(parts, "\n")
}

// dropEmptySections removes section headers that have no lines under them.
func dropEmptySections(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if isSection(p) && len(out) > 0 && isSection(out[len(out)-1]) {
			out = out[:len(out)-1]
		}
		out = append(out, p)
	}
	if len(out) > 0 && isSection(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func isSection(s string) bool {
	return strings.HasPrefix(s, "---")
}
