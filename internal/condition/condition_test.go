package condition

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"visapath/internal/profile"
)

type EvaluatorSuite struct {
	suite.Suite
	evaluator *Evaluator
}

func (s *EvaluatorSuite) SetupTest() {
	s.evaluator = NewEvaluator()
}

func (s *EvaluatorSuite) SetupSubTest() {
	s.evaluator = NewEvaluator()
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorSuite))
}

func (s *EvaluatorSuite) applicant() profile.Applicant {
	return profile.Applicant{
		SponsorType:   profile.SponsorFamily,
		CurrentStatus: profile.StatusStudent,
		IsStudent:     true,
		IsEmployed:    false,
		RiskScore:     profile.RiskScore{Level: profile.RiskLow},
	}
}

// TestComparisons verifies single-comparison expressions over both value
// types.
func (s *EvaluatorSuite) TestComparisons() {
	s.Run("string inequality", func() {
		verdict, err := s.evaluator.Evaluate("sponsorType !== 'self'", s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("string equality", func() {
		verdict, err := s.evaluator.Evaluate("currentStatus === 'student'", s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("string equality is case-sensitive", func() {
		verdict, err := s.evaluator.Evaluate("currentStatus === 'Student'", s.applicant())
		s.Require().NoError(err)
		s.False(verdict)
	})

	s.Run("boolean equality", func() {
		verdict, err := s.evaluator.Evaluate("isEmployed === false", s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("dotted path resolves nested attribute", func() {
		verdict, err := s.evaluator.Evaluate("riskScore.level === 'low'", s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("double-quoted literals accepted", func() {
		verdict, err := s.evaluator.Evaluate(`sponsorType === "family"`, s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})
}

// TestLogicalOperators verifies joined and parenthesized expressions.
func (s *EvaluatorSuite) TestLogicalOperators() {
	s.Run("parenthesized OR short-circuits on first true", func() {
		expr := "(isStudent === true) || (hasUniversityInvitation === true)"
		verdict, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("AND requires every term", func() {
		expr := "isStudent === true && isEmployed === true"
		verdict, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().NoError(err)
		s.False(verdict)
	})

	s.Run("AND over three terms", func() {
		expr := "isStudent === true && isEmployed === false && sponsorType !== 'self'"
		verdict, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})

	s.Run("OR over all-false terms", func() {
		expr := "isEmployed === true || hasChildren === true"
		verdict, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().NoError(err)
		s.False(verdict)
	})
}

// TestFailureKinds verifies each failure classification.
func (s *EvaluatorSuite) TestFailureKinds() {
	s.Run("unknown field", func() {
		_, err := s.evaluator.Evaluate("fooBar === true", s.applicant())
		s.Require().Error(err)
		s.Equal(KindUnknownField, KindOf(err))
	})

	s.Run("boolean field against string literal", func() {
		_, err := s.evaluator.Evaluate("isStudent === 'true'", s.applicant())
		s.Require().Error(err)
		s.Equal(KindTypeMismatch, KindOf(err))
	})

	s.Run("string field against boolean literal", func() {
		_, err := s.evaluator.Evaluate("sponsorType === true", s.applicant())
		s.Require().Error(err)
		s.Equal(KindTypeMismatch, KindOf(err))
	})

	s.Run("malformed expression", func() {
		_, err := s.evaluator.Evaluate("sponsorType ===", s.applicant())
		s.Require().Error(err)
		s.Equal(KindInvalidExpression, KindOf(err))
	})

	s.Run("single equals rejected", func() {
		_, err := s.evaluator.Evaluate("sponsorType = 'self'", s.applicant())
		s.Require().Error(err)
		s.Equal(KindInvalidExpression, KindOf(err))
	})

	s.Run("mixed joiners without parentheses rejected", func() {
		expr := "isStudent === true && isEmployed === true || hasChildren === true"
		_, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().Error(err)
		s.Equal(KindInvalidExpression, KindOf(err))
	})

	s.Run("mixed joiners accepted when parenthesized", func() {
		expr := "(isStudent === true && isEmployed === false) || hasChildren === true"
		verdict, err := s.evaluator.Evaluate(expr, s.applicant())
		s.Require().NoError(err)
		s.True(verdict)
	})
}

// TestMemoization verifies the per-expression cache, including negative
// caching of parse failures.
func (s *EvaluatorSuite) TestMemoization() {
	s.Run("repeat evaluations share one parse", func() {
		expr := "sponsorType !== 'self'"
		for i := 0; i < 3; i++ {
			_, err := s.evaluator.Evaluate(expr, s.applicant())
			s.Require().NoError(err)
		}
		s.Equal(1, s.evaluator.CacheSize())
	})

	s.Run("distinct expressions cached separately", func() {
		_, _ = s.evaluator.Evaluate("isStudent === true", s.applicant())
		_, _ = s.evaluator.Evaluate("isStudent === false", s.applicant())
		s.Equal(2, s.evaluator.CacheSize())
	})

	s.Run("parse failures cached too", func() {
		before := s.evaluator.CacheSize()
		for i := 0; i < 2; i++ {
			_, err := s.evaluator.Evaluate("not a condition", s.applicant())
			s.Require().Error(err)
		}
		s.Equal(before+1, s.evaluator.CacheSize())
	})

	s.Run("cached failure keeps its kind", func() {
		_, first := s.evaluator.Evaluate("&&", s.applicant())
		_, second := s.evaluator.Evaluate("&&", s.applicant())
		s.Require().Error(first)
		s.Require().Error(second)
		s.Equal(KindOf(first), KindOf(second))
	})
}

// TestPurity verifies evaluation depends only on expression and profile.
func (s *EvaluatorSuite) TestPurity() {
	expr := "(currentStatus === 'student') || (hasOtherInvitation === true)"
	applicant := s.applicant()

	first, err := s.evaluator.Evaluate(expr, applicant)
	s.Require().NoError(err)
	second, err := s.evaluator.Evaluate(expr, applicant)
	s.Require().NoError(err)
	s.Equal(first, second)
}
