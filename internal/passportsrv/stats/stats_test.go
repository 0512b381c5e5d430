package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openpassport/dppsrv/internal/passportsrv/passport"
)

func record(country, category, status string, archived bool) passport.DigitalProductPassport {
	return passport.DigitalProductPassport{
		Category: category,
		Metadata: passport.Metadata{Status: status, IsArchived: archived},
		ProductDetails: passport.ProductDetails{
			CountryOfOrigin: country,
		},
	}
}

func TestCountries(t *testing.T) {
	records := []passport.DigitalProductPassport{
		record("de", "Apparel", "active", false),
		record("DE", "Apparel", "active", false),
		record("fr", "Footwear", "draft", true),
		record("", "Footwear", "", false),
	}

	counts := Countries(records)
	byCode := make(map[string]int)
	total := 0
	for _, c := range counts {
		byCode[c.CountryCode] = c.Count
		total += c.Count
	}

	// counts sum to the number of records scanned, archived ones included
	assert.Equal(t, len(records), total)
	assert.Equal(t, 2, byCode["DE"])
	assert.Equal(t, 1, byCode["FR"])
	assert.Equal(t, 1, byCode[UnknownKey])
}

func TestCategories(t *testing.T) {
	records := []passport.DigitalProductPassport{
		record("DE", "apparel", "active", false),
		record("DE", "Apparel", "active", false),
		record("DE", "", "active", false),
	}

	counts := Categories(records)
	byCategory := make(map[string]int)
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}
	assert.Equal(t, 2, byCategory["APPAREL"])
	assert.Equal(t, 1, byCategory[UnknownKey])
}

func TestComplianceStatuses(t *testing.T) {
	records := []passport.DigitalProductPassport{
		record("DE", "Apparel", "compliant", false),
		record("DE", "Apparel", "pending review", false),
	}

	counts := ComplianceStatuses(records)
	byStatus := make(map[string]int)
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}
	assert.Equal(t, 1, byStatus["COMPLIANT"])
	assert.Equal(t, 1, byStatus["PENDING REVIEW"])
}

func TestEmptyScan(t *testing.T) {
	assert.Empty(t, Countries(nil))
	assert.Empty(t, Categories(nil))
	assert.Empty(t, ComplianceStatuses(nil))
}
