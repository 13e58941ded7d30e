package handler

import (
	"visapath/internal/ruleset"
	"visapath/pkg/domain"
)

// CreateDraftRequest is the body of POST /admin/rulesets.
type CreateDraftRequest struct {
	CountryCode string             `json:"countryCode"`
	VisaType    string             `json:"visaType"`
	Documents   []ruleset.Document `json:"documents"`
}

// ParsePair validates the country and visa type into domain values.
func (r CreateDraftRequest) ParsePair() (domain.CountryCode, domain.VisaType, error) {
	country, err := domain.ParseCountryCode(r.CountryCode)
	if err != nil {
		return "", "", err
	}
	visaType, err := domain.ParseVisaType(r.VisaType)
	if err != nil {
		return "", "", err
	}
	return country, visaType, nil
}

// PatchRequest is the body of PATCH /admin/rulesets/{id}. The document list
// replaces the draft's list wholesale.
type PatchRequest struct {
	Documents []ruleset.Document `json:"documents"`
}
