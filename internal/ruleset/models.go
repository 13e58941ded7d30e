// Package ruleset holds the versioned, per-(country, visaType) document
// requirement definitions and the draft/approve lifecycle around them.
//
// Lifecycle: drafts are created by the administrative workflow, optionally
// patched, then approved. Approval is the only transition out of draft; a
// flawed draft is abandoned by creating a new one. Once approved a version is
// write-once, and resolution only ever reads the highest approved version of
// a pair.
package ruleset

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"visapath/pkg/domain"
	dErrors "visapath/pkg/domain-errors"
)

// DocumentCategory is the importance tier a rule set assigns a document.
type DocumentCategory string

const (
	CategoryRequired          DocumentCategory = "required"
	CategoryHighlyRecommended DocumentCategory = "highly_recommended"
	CategoryOptional          DocumentCategory = "optional"
)

var validCategories = map[DocumentCategory]bool{
	CategoryRequired:          true,
	CategoryHighlyRecommended: true,
	CategoryOptional:          true,
}

func (c DocumentCategory) IsValid() bool {
	return validCategories[c]
}

// Document is one requirement entry in a rule set. A document with an empty
// Condition applies to every applicant at its stated category.
type Document struct {
	Type                 string           `json:"documentType"`
	Category             DocumentCategory `json:"category"`
	Description          string           `json:"description,omitempty"`
	ValidityRequirements string           `json:"validityRequirements,omitempty"`
	FormatRequirements   string           `json:"formatRequirements,omitempty"`
	Condition            string           `json:"condition,omitempty"`
}

// Conditioned reports whether the document carries a non-empty condition.
// Whitespace-only conditions count as absent.
func (d Document) Conditioned() bool {
	return strings.TrimSpace(d.Condition) != ""
}

// AnyConditioned reports whether any document in the list carries a condition.
// Conditions are a schema capability introduced at version 2, so their
// presence forces the owning version's number to at least 2.
func AnyConditioned(documents []Document) bool {
	for _, doc := range documents {
		if doc.Conditioned() {
			return true
		}
	}
	return false
}

// Version is one rule set version for a (country, visaType) pair.
//
// Invariants:
//   - Number is positive and strictly increasing per pair.
//   - Number >= 2 whenever any document carries a condition.
//   - Approved versions are write-once.
type Version struct {
	ID          domain.RuleSetID
	CountryCode domain.CountryCode
	VisaType    domain.VisaType
	Number      int
	Approved    bool
	Documents   []Document
	// Opaque pass-through data the engine stores but never interprets.
	Financial  json.RawMessage
	Processing json.RawMessage
	Fees       json.RawMessage
	CreatedAt  time.Time
	ApprovedAt *time.Time
}

// MinimumNumber is the lowest version number a document list permits.
// Conditions are a version-2 schema capability, so their presence floors the
// number at 2.
func MinimumNumber(documents []Document) int {
	if AnyConditioned(documents) {
		return 2
	}
	return 1
}

// ValidateDocuments checks the static shape of a document list: non-empty
// types and known categories. Condition syntax is validated separately by the
// service so the model stays free of the parser.
func ValidateDocuments(documents []Document) error {
	if len(documents) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "rule set must declare at least one document")
	}
	for i, doc := range documents {
		if strings.TrimSpace(doc.Type) == "" {
			return dErrors.New(dErrors.CodeInvalidInput, "document at index "+strconv.Itoa(i)+" has no documentType")
		}
		if !doc.Category.IsValid() {
			return dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("document %s has invalid category %q", doc.Type, doc.Category))
		}
	}
	return nil
}
