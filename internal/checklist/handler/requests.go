package handler

import (
	"visapath/internal/profile"
	"visapath/pkg/domain"
)

// ResolveRequest is the body of POST /checklist/resolve.
type ResolveRequest struct {
	CountryCode string            `json:"countryCode"`
	VisaType    string            `json:"visaType"`
	Profile     profile.Applicant `json:"profile"`
}

// Parse validates the request into domain values.
func (r ResolveRequest) Parse() (domain.CountryCode, domain.VisaType, profile.Applicant, error) {
	country, err := domain.ParseCountryCode(r.CountryCode)
	if err != nil {
		return "", "", profile.Applicant{}, err
	}
	visaType, err := domain.ParseVisaType(r.VisaType)
	if err != nil {
		return "", "", profile.Applicant{}, err
	}
	if err := r.Profile.Validate(); err != nil {
		return "", "", profile.Applicant{}, err
	}
	return country, visaType, r.Profile, nil
}

// ParseRequest is the body of POST /checklist/parse: a raw, typically
// AI-generated payload plus the context needed to normalize a legacy shape.
type ParseRequest struct {
	Content     string            `json:"content"`
	CountryCode string            `json:"countryCode"`
	VisaType    string            `json:"visaType"`
	Profile     profile.Applicant `json:"profile"`
}
