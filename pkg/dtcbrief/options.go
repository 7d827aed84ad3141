// Package dtcbrief converts DTC marketing calendars into ClickUp tasks.
package dtcbrief

import (
	"fmt"
	"strings"
	"time"
)

// Brands the calendars are kept for.
const (
	BrandPB  = "PB"
	BrandTGW = "TGW"
)

// KnownBrands lists accepted brand codes.
var KnownBrands = []string{BrandPB, BrandTGW}

// Options configures a conversion run.
type Options struct {
	// Brand is the brand code applied as the first tag of every task.
	Brand string
	// Weeks restricts conversion to these weekly sheet names. Empty means all.
	Weeks []string
	// IncludeLaunches also converts the Product Launch Calendar sheet.
	IncludeLaunches bool
	// IncludeLinks specifies whether hyperlink targets replace cell captions
	// for URL fields. If nil, defaults to true.
	IncludeLinks *bool
	// Assignee is copied onto every task.
	Assignee string
	// ReferenceYear completes header due dates written without a year.
	// If zero, the current year is used.
	ReferenceYear int
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Brand: BrandPB,
	}
}

// ShouldIncludeLinks returns whether to read cell hyperlinks.
func (o Options) ShouldIncludeLinks() bool {
	if o.IncludeLinks != nil {
		return *o.IncludeLinks
	}
	return true
}

// Year returns the reference year for header due dates.
func (o Options) Year() int {
	if o.ReferenceYear > 0 {
		return o.ReferenceYear
	}
	return time.Now().Year()
}

// NormalizeBrand upper-cases a brand code and checks it is known.
func NormalizeBrand(brand string) (string, error) {
	b := strings.ToUpper(strings.TrimSpace(brand))
	for _, known := range KnownBrands {
		if b == known {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownBrand, brand, strings.Join(KnownBrands, ", "))
}
