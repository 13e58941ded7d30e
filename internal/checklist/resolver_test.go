package checklist

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"visapath/internal/condition"
	"visapath/internal/profile"
	"visapath/internal/ruleset"
)

type ResolverSuite struct {
	suite.Suite
	evaluator *condition.Evaluator
}

func (s *ResolverSuite) SetupTest() {
	s.evaluator = condition.NewEvaluator()
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) applicant() profile.Applicant {
	return profile.Applicant{
		SponsorType: profile.SponsorSelf,
		IsStudent:   false,
		IsEmployed:  true,
	}
}

// TestInclusion verifies unconditioned documents always stay and conditions
// drive the verdict for the rest.
func (s *ResolverSuite) TestInclusion() {
	documents := []ruleset.Document{
		{Type: "passport", Category: ruleset.CategoryRequired},
		{Type: "employment_letter", Category: ruleset.CategoryRequired, Condition: "isEmployed === true"},
		{Type: "enrollment_letter", Category: ruleset.CategoryRequired, Condition: "isStudent === true"},
	}

	resolved, warnings := resolveDocuments(s.evaluator, documents, s.applicant())
	s.Require().Len(resolved, 3)
	s.Empty(warnings)

	s.True(resolved[0].Included)
	s.True(resolved[1].Included)
	s.False(resolved[2].Included)
}

// TestFailOpen verifies every failure kind includes the document and records
// a warning.
func (s *ResolverSuite) TestFailOpen() {
	s.Run("unknown field", func() {
		documents := []ruleset.Document{
			{Type: "passport", Category: ruleset.CategoryRequired, Condition: "fooBar === true"},
		}
		resolved, warnings := resolveDocuments(s.evaluator, documents, s.applicant())
		s.Require().Len(resolved, 1)
		s.True(resolved[0].Included)

		s.Require().Len(warnings, 1)
		s.Equal("passport", warnings[0].DocumentType)
		s.Equal("fooBar === true", warnings[0].Condition)
		s.Contains(warnings[0].Reason, "unknown_field")
	})

	s.Run("invalid expression", func() {
		documents := []ruleset.Document{
			{Type: "photo", Category: ruleset.CategoryOptional, Condition: "not parseable"},
		}
		resolved, warnings := resolveDocuments(s.evaluator, documents, s.applicant())
		s.True(resolved[0].Included)
		s.Require().Len(warnings, 1)
		s.Contains(warnings[0].Reason, "invalid_expression")
	})

	s.Run("type mismatch", func() {
		documents := []ruleset.Document{
			{Type: "photo", Category: ruleset.CategoryOptional, Condition: "isStudent === 'yes'"},
		}
		resolved, warnings := resolveDocuments(s.evaluator, documents, s.applicant())
		s.True(resolved[0].Included)
		s.Require().Len(warnings, 1)
		s.Contains(warnings[0].Reason, "type_mismatch")
	})

	s.Run("one failure does not poison the rest", func() {
		documents := []ruleset.Document{
			{Type: "broken", Category: ruleset.CategoryRequired, Condition: "((("},
			{Type: "enrollment_letter", Category: ruleset.CategoryRequired, Condition: "isStudent === true"},
		}
		resolved, warnings := resolveDocuments(s.evaluator, documents, s.applicant())
		s.True(resolved[0].Included)
		s.False(resolved[1].Included)
		s.Len(warnings, 1)
	})
}

// TestOrderAndIdempotency verifies declaration order is preserved and repeat
// runs agree.
func (s *ResolverSuite) TestOrderAndIdempotency() {
	documents := []ruleset.Document{
		{Type: "c", Category: ruleset.CategoryOptional},
		{Type: "a", Category: ruleset.CategoryRequired},
		{Type: "b", Category: ruleset.CategoryHighlyRecommended, Condition: "isEmployed === true"},
	}

	first, _ := resolveDocuments(s.evaluator, documents, s.applicant())
	second, _ := resolveDocuments(s.evaluator, documents, s.applicant())

	s.Equal([]string{"c", "a", "b"}, []string{first[0].Type, first[1].Type, first[2].Type})
	s.Equal(first, second)
}
