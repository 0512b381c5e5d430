// Package stats computes cross-record frequency counts. Output ordering is
// not guaranteed; consumers must not rely on it.
package stats

import (
	"strings"

	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
)

// UnknownKey buckets records that carry no value for the counted field.
const UnknownKey = "UNKNOWN"

type CountryCount struct {
	CountryCode string `json:"countryCode"`
	Count       int    `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// Countries counts records by uppercased country of origin. The scan covers
// every record handed in, archived ones included; narrower consumers filter
// before calling.
func Countries(records []passport.DigitalProductPassport) []CountryCount {
	counts := countBy(records, func(p *passport.DigitalProductPassport) string {
		return p.ProductDetails.CountryOfOrigin
	})
	out := make([]CountryCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, CountryCount{CountryCode: code, Count: n})
	}
	return out
}

// Categories counts records by uppercased product category.
func Categories(records []passport.DigitalProductPassport) []CategoryCount {
	counts := countBy(records, func(p *passport.DigitalProductPassport) string {
		return p.Category
	})
	out := make([]CategoryCount, 0, len(counts))
	for category, n := range counts {
		out = append(out, CategoryCount{Category: category, Count: n})
	}
	return out
}

// ComplianceStatuses counts records by uppercased record status.
func ComplianceStatuses(records []passport.DigitalProductPassport) []StatusCount {
	counts := countBy(records, func(p *passport.DigitalProductPassport) string {
		return p.Metadata.Status
	})
	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	return out
}

func countBy(records []passport.DigitalProductPassport, key func(*passport.DigitalProductPassport) string) map[string]int {
	counts := make(map[string]int)
	for i := range records {
		counts[normalize(key(&records[i]))]++
	}
	return counts
}

func normalize(v string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	if v == "" {
		return UnknownKey
	}
	return v
}
