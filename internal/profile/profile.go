// Package profile defines the applicant attribute snapshot that conditions are
// evaluated against. The vocabulary is fixed: condition authors can only
// reference the attributes declared here, and the evaluator reports any other
// field as unknown.
package profile

import (
	dErrors "visapath/pkg/domain-errors"
)

// SponsorType says who is financially backing the application.
type SponsorType string

const (
	SponsorSelf     SponsorType = "self"
	SponsorFamily   SponsorType = "family"
	SponsorEmployer SponsorType = "employer"
	SponsorOther    SponsorType = "other"
)

var validSponsorTypes = map[SponsorType]bool{
	SponsorSelf:     true,
	SponsorFamily:   true,
	SponsorEmployer: true,
	SponsorOther:    true,
}

// CurrentStatus is the applicant's occupation status.
type CurrentStatus string

const (
	StatusEmployed   CurrentStatus = "employed"
	StatusStudent    CurrentStatus = "student"
	StatusUnemployed CurrentStatus = "unemployed"
	StatusOther      CurrentStatus = "other"
)

var validCurrentStatuses = map[CurrentStatus]bool{
	StatusEmployed:   true,
	StatusStudent:    true,
	StatusUnemployed: true,
	StatusOther:      true,
}

// RiskLevel buckets the applicant's assessed risk.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

var validRiskLevels = map[RiskLevel]bool{
	RiskLow:    true,
	RiskMedium: true,
	RiskHigh:   true,
}

// RiskScore nests the assessed risk so conditions address it as
// "riskScore.level", matching how rule authors see the applicant document.
type RiskScore struct {
	Level RiskLevel `json:"level"`
}

// Applicant is an immutable snapshot of the attributes a condition may
// reference. It is constructed per request and never mutated by the engine.
type Applicant struct {
	SponsorType               SponsorType   `json:"sponsorType"`
	CurrentStatus             CurrentStatus `json:"currentStatus"`
	IsStudent                 bool          `json:"isStudent"`
	IsEmployed                bool          `json:"isEmployed"`
	HasInternationalTravel    bool          `json:"hasInternationalTravel"`
	PreviousVisaRejections    bool          `json:"previousVisaRejections"`
	PreviousOverstay          bool          `json:"previousOverstay"`
	HasPropertyInLocalCountry bool          `json:"hasPropertyInLocalCountry"`
	HasFamilyInLocalCountry   bool          `json:"hasFamilyInLocalCountry"`
	HasChildren               bool          `json:"hasChildren"`
	HasUniversityInvitation   bool          `json:"hasUniversityInvitation"`
	HasOtherInvitation        bool          `json:"hasOtherInvitation"`
	VisaType                  string        `json:"visaType"`
	RiskScore                 RiskScore     `json:"riskScore"`
}

// Validate checks enum-valued attributes. Zero values are permitted for the
// booleans and visaType; enum fields must carry a supported value when set.
func (a Applicant) Validate() error {
	if a.SponsorType != "" && !validSponsorTypes[a.SponsorType] {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid sponsorType: "+string(a.SponsorType))
	}
	if a.CurrentStatus != "" && !validCurrentStatuses[a.CurrentStatus] {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid currentStatus: "+string(a.CurrentStatus))
	}
	if a.RiskScore.Level != "" && !validRiskLevels[a.RiskScore.Level] {
		return dErrors.New(dErrors.CodeInvalidInput, "invalid riskScore.level: "+string(a.RiskScore.Level))
	}
	return nil
}

// ValueKind tags the runtime type of an attribute value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
)

// Value is a typed attribute value handed to the condition evaluator.
type Value struct {
	Kind ValueKind
	Str  string
	Bool bool
}

func stringValue(s string) Value { return Value{Kind: KindString, Str: s} }
func boolValue(b bool) Value     { return Value{Kind: KindBool, Bool: b} }

// attributes is the single source of truth for the condition vocabulary.
// Dotted paths resolve through nested structures (riskScore.level).
var attributes = map[string]func(Applicant) Value{
	"sponsorType":               func(a Applicant) Value { return stringValue(string(a.SponsorType)) },
	"currentStatus":             func(a Applicant) Value { return stringValue(string(a.CurrentStatus)) },
	"isStudent":                 func(a Applicant) Value { return boolValue(a.IsStudent) },
	"isEmployed":                func(a Applicant) Value { return boolValue(a.IsEmployed) },
	"hasInternationalTravel":    func(a Applicant) Value { return boolValue(a.HasInternationalTravel) },
	"previousVisaRejections":    func(a Applicant) Value { return boolValue(a.PreviousVisaRejections) },
	"previousOverstay":          func(a Applicant) Value { return boolValue(a.PreviousOverstay) },
	"hasPropertyInLocalCountry": func(a Applicant) Value { return boolValue(a.HasPropertyInLocalCountry) },
	"hasFamilyInLocalCountry":   func(a Applicant) Value { return boolValue(a.HasFamilyInLocalCountry) },
	"hasChildren":               func(a Applicant) Value { return boolValue(a.HasChildren) },
	"hasUniversityInvitation":   func(a Applicant) Value { return boolValue(a.HasUniversityInvitation) },
	"hasOtherInvitation":        func(a Applicant) Value { return boolValue(a.HasOtherInvitation) },
	"visaType":                  func(a Applicant) Value { return stringValue(a.VisaType) },
	"riskScore.level":           func(a Applicant) Value { return stringValue(string(a.RiskScore.Level)) },
}

// Attribute resolves a (possibly dotted) field path against the snapshot.
// The second return is false when the path is outside the vocabulary.
func (a Applicant) Attribute(path string) (Value, bool) {
	accessor, ok := attributes[path]
	if !ok {
		return Value{}, false
	}
	return accessor(a), true
}

// KnownAttribute reports whether path is part of the condition vocabulary.
func KnownAttribute(path string) bool {
	_, ok := attributes[path]
	return ok
}
