package handler

import (
	"time"

	"visapath/internal/ruleset"
)

// VersionResponse is the HTTP representation of a rule set version.
type VersionResponse struct {
	ID          string             `json:"id"`
	CountryCode string             `json:"countryCode"`
	VisaType    string             `json:"visaType"`
	Version     int                `json:"version"`
	Approved    bool               `json:"approved"`
	Documents   []ruleset.Document `json:"documents"`
	CreatedAt   time.Time          `json:"createdAt"`
	ApprovedAt  *time.Time         `json:"approvedAt,omitempty"`
}

// FromVersion converts a domain version to its HTTP representation.
func FromVersion(version *ruleset.Version) *VersionResponse {
	return &VersionResponse{
		ID:          version.ID.String(),
		CountryCode: version.CountryCode.String(),
		VisaType:    version.VisaType.String(),
		Version:     version.Number,
		Approved:    version.Approved,
		Documents:   version.Documents,
		CreatedAt:   version.CreatedAt,
		ApprovedAt:  version.ApprovedAt,
	}
}
