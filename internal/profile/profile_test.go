package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "visapath/pkg/domain-errors"
)

type ProfileSuite struct {
	suite.Suite
}

func TestProfileSuite(t *testing.T) {
	suite.Run(t, new(ProfileSuite))
}

// TestValidate verifies enum checking with zero values permitted.
func (s *ProfileSuite) TestValidate() {
	s.Run("zero applicant is valid", func() {
		s.NoError(Applicant{}.Validate())
	})

	s.Run("supported enum values pass", func() {
		applicant := Applicant{
			SponsorType:   SponsorEmployer,
			CurrentStatus: StatusEmployed,
			RiskScore:     RiskScore{Level: RiskHigh},
		}
		s.NoError(applicant.Validate())
	})

	s.Run("unknown sponsorType rejected", func() {
		err := Applicant{SponsorType: "patron"}.Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown currentStatus rejected", func() {
		err := Applicant{CurrentStatus: "retired"}.Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("unknown riskScore.level rejected", func() {
		err := Applicant{RiskScore: RiskScore{Level: "extreme"}}.Validate()
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

// TestAttribute verifies the vocabulary lookup, including the dotted risk
// path.
func (s *ProfileSuite) TestAttribute() {
	applicant := Applicant{
		SponsorType: SponsorSelf,
		IsStudent:   true,
		RiskScore:   RiskScore{Level: RiskMedium},
	}

	s.Run("string attribute", func() {
		value, ok := applicant.Attribute("sponsorType")
		s.Require().True(ok)
		s.Equal(KindString, value.Kind)
		s.Equal("self", value.Str)
	})

	s.Run("boolean attribute", func() {
		value, ok := applicant.Attribute("isStudent")
		s.Require().True(ok)
		s.Equal(KindBool, value.Kind)
		s.True(value.Bool)
	})

	s.Run("dotted path", func() {
		value, ok := applicant.Attribute("riskScore.level")
		s.Require().True(ok)
		s.Equal("medium", value.Str)
	})

	s.Run("outside vocabulary", func() {
		_, ok := applicant.Attribute("passportNumber")
		s.False(ok)
		s.False(KnownAttribute("passportNumber"))
	})

	s.Run("nested field is not addressable bare", func() {
		_, ok := applicant.Attribute("riskScore")
		s.False(ok)
	})
}

// TestJSONShape verifies the wire field names clients send.
func (s *ProfileSuite) TestJSONShape() {
	payload := `{
		"sponsorType": "family",
		"currentStatus": "student",
		"isStudent": true,
		"hasUniversityInvitation": true,
		"riskScore": {"level": "low"}
	}`

	var applicant Applicant
	s.Require().NoError(json.Unmarshal([]byte(payload), &applicant))
	s.Equal(SponsorFamily, applicant.SponsorType)
	s.Equal(StatusStudent, applicant.CurrentStatus)
	s.True(applicant.IsStudent)
	s.True(applicant.HasUniversityInvitation)
	s.Equal(RiskLow, applicant.RiskScore.Level)
}
