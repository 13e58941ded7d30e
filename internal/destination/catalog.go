// Package destination supplies display metadata for destination countries and
// visa types. The engine only needs names and labels for checklist envelopes;
// the catalog sits behind an interface so a reference-data service can replace
// the static seed without touching resolution.
package destination

import (
	"context"
	"strings"

	"visapath/pkg/domain"
)

// Info is the display metadata for one (country, visaType) pair.
type Info struct {
	CountryCode   string
	CountryName   string
	VisaTypeCode  string
	VisaTypeLabel string
	Disclaimer    string
}

// Catalog resolves display metadata. Lookup always succeeds: unknown codes
// fall back to the code itself so a missing catalog entry never blocks a
// checklist.
type Catalog interface {
	Lookup(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (Info, error)
}

// StaticCatalog serves a fixed seed of common destinations.
type StaticCatalog struct {
	countries map[string]string
	visaTypes map[string]string
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		countries: map[string]string{
			"US": "United States",
			"GB": "United Kingdom",
			"DE": "Germany",
			"FR": "France",
			"ES": "Spain",
			"IT": "Italy",
			"JP": "Japan",
			"KR": "South Korea",
			"CA": "Canada",
			"AU": "Australia",
			"NL": "Netherlands",
			"PT": "Portugal",
		},
		visaTypes: map[string]string{
			"tourist":  "Tourist Visa",
			"student":  "Student Visa",
			"work":     "Work Visa",
			"business": "Business Visa",
			"family":   "Family Reunification Visa",
			"transit":  "Transit Visa",
		},
	}
}

const disclaimer = "Document requirements are provided for guidance only; " +
	"always confirm with the destination country's consulate before applying."

func (c *StaticCatalog) Lookup(_ context.Context, country domain.CountryCode, visaType domain.VisaType) (Info, error) {
	name, ok := c.countries[country.String()]
	if !ok {
		name = country.String()
	}
	label, ok := c.visaTypes[visaType.String()]
	if !ok {
		label = titleCase(visaType.String()) + " Visa"
	}
	return Info{
		CountryCode:   country.String(),
		CountryName:   name,
		VisaTypeCode:  visaType.String(),
		VisaTypeLabel: label,
		Disclaimer:    disclaimer,
	}, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
