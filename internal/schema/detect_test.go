package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type DetectSuite struct {
	suite.Suite
}

func TestDetectSuite(t *testing.T) {
	suite.Run(t, new(DetectSuite))
}

// TestDetectAndParse verifies the tagged-union contract: exactly one branch
// populated, and never an error.
func (s *DetectSuite) TestDetectAndParse() {
	s.Run("canonical payload", func() {
		raw := `{
			"countryCode": "DE",
			"countryName": "Germany",
			"visaTypeCode": "student",
			"requiredDocuments": [
				{"id": "passport", "status": "REQUIRED", "name": "Passport", "priority": "high", "isCoreRequired": true}
			]
		}`
		detection := DetectAndParse(raw)
		s.Equal(FormatBrain, detection.Format)
		s.Require().NotNil(detection.Brain)
		s.Nil(detection.Legacy)
		s.Equal("DE", detection.Brain.CountryCode)
		s.Require().Len(detection.Brain.RequiredDocuments, 1)
		s.Equal(StatusRequired, detection.Brain.RequiredDocuments[0].Status)
	})

	s.Run("legacy payload", func() {
		raw := `{
			"type": "student",
			"country": "DE",
			"checklist": [
				{"document": "passport", "category": "required", "required": true}
			]
		}`
		detection := DetectAndParse(raw)
		s.Equal(FormatLegacy, detection.Format)
		s.Require().NotNil(detection.Legacy)
		s.Nil(detection.Brain)
		s.Require().Len(detection.Legacy.Checklist, 1)
		s.Equal("passport", detection.Legacy.Checklist[0].Document)
	})

	s.Run("malformed JSON is unknown", func() {
		detection := DetectAndParse(`{"countryCode": "DE",`)
		s.Equal(FormatUnknown, detection.Format)
		s.Nil(detection.Brain)
		s.Nil(detection.Legacy)
	})

	s.Run("valid JSON with neither shape is unknown", func() {
		detection := DetectAndParse(`{"message": "here is your checklist"}`)
		s.Equal(FormatUnknown, detection.Format)
	})

	s.Run("non-object JSON is unknown", func() {
		s.Equal(FormatUnknown, DetectAndParse(`[1, 2, 3]`).Format)
		s.Equal(FormatUnknown, DetectAndParse(`"checklist"`).Format)
		s.Equal(FormatUnknown, DetectAndParse(``).Format)
	})

	s.Run("canonical markers must all be present", func() {
		raw := `{"countryCode": "DE", "requiredDocuments": []}`
		s.Equal(FormatUnknown, DetectAndParse(raw).Format)
	})

	s.Run("marker fields must carry the right type", func() {
		raw := `{"countryCode": "DE", "visaTypeCode": "student", "requiredDocuments": "none"}`
		s.Equal(FormatUnknown, DetectAndParse(raw).Format)

		raw = `{"checklist": {"document": "passport"}}`
		s.Equal(FormatUnknown, DetectAndParse(raw).Format)
	})

	s.Run("canonical markers win when both shapes present", func() {
		raw := `{
			"countryCode": "DE",
			"visaTypeCode": "student",
			"requiredDocuments": [],
			"checklist": []
		}`
		detection := DetectAndParse(raw)
		s.Equal(FormatBrain, detection.Format)
		s.NotNil(detection.Brain)
		s.Nil(detection.Legacy)
	})
}
