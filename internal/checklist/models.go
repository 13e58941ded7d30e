// Package checklist resolves the applicant-specific document list: it
// combines the active rule set version with an applicant profile through the
// condition evaluator and shapes the result into the checklist schemas.
package checklist

import (
	"visapath/internal/ruleset"
	"visapath/pkg/domain"
)

// ResolvedDocument is one rule set entry annotated with the verdict for this
// applicant. Category and priority come verbatim from the rule set; Included
// is the only applicant-dependent field.
type ResolvedDocument struct {
	ruleset.Document
	Included bool `json:"included"`
}

// Warning records a condition that could not be evaluated. The document it
// gates is included anyway (fail-open): a malformed or stale condition must
// never hide a potentially required document, but the failure has to be
// visible for audit.
type Warning struct {
	DocumentType string `json:"documentType"`
	Condition    string `json:"condition"`
	Reason       string `json:"reason"`
}

// Resolution is the outcome of resolving one applicant against the active
// rule set version of a pair. Document order matches the rule set's declared
// order.
type Resolution struct {
	RuleSetID   domain.RuleSetID   `json:"ruleSetId"`
	Version     int                `json:"version"`
	CountryCode domain.CountryCode `json:"countryCode"`
	VisaType    domain.VisaType    `json:"visaType"`
	Documents   []ResolvedDocument `json:"documents"`
	Warnings    []Warning          `json:"warnings,omitempty"`
}
