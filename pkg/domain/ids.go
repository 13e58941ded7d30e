package domain

import (
	"github.com/google/uuid"

	dErrors "visapath/pkg/domain-errors"
)

// RuleSetID identifies a single rule set version. Each draft gets a fresh ID;
// the (countryCode, visaType, version) triple identifies its place in history.
type RuleSetID uuid.UUID

// NewRuleSetID returns a random RuleSetID.
func NewRuleSetID() RuleSetID {
	return RuleSetID(uuid.New())
}

// ParseRuleSetID constructs a RuleSetID from external input.
func ParseRuleSetID(s string) (RuleSetID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return RuleSetID{}, dErrors.New(dErrors.CodeInvalidInput, "invalid rule set id")
	}
	return RuleSetID(u), nil
}

func (id RuleSetID) String() string {
	return uuid.UUID(id).String()
}

// MarshalText encodes the ID as its canonical UUID string.
func (id RuleSetID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText decodes a canonical UUID string.
func (id *RuleSetID) UnmarshalText(text []byte) error {
	u, err := uuid.Parse(string(text))
	if err != nil {
		return err
	}
	*id = RuleSetID(u)
	return nil
}

func (id RuleSetID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}
