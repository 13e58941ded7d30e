package schema

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"visapath/internal/profile"
)

type AdapterSuite struct {
	suite.Suite
}

func TestAdapterSuite(t *testing.T) {
	suite.Run(t, new(AdapterSuite))
}

func (s *AdapterSuite) brainOutput() *BrainOutput {
	return &BrainOutput{
		CountryCode:   "DE",
		CountryName:   "Germany",
		VisaTypeCode:  "student",
		VisaTypeLabel: "Student Visa",
		RequiredDocuments: []BrainItem{
			{
				ID:             "passport",
				Status:         StatusRequired,
				Name:           "Passport",
				NameLocalized:  map[string]string{"de": "Reisepass"},
				Description:    "Valid for six months",
				Priority:       PriorityHigh,
				IsCoreRequired: true,
			},
			{
				ID:            "enrollment_letter",
				Status:        StatusConditional,
				Name:          "Enrollment letter",
				Priority:      PriorityHigh,
				IsConditional: true,
			},
			{
				ID:       "itinerary",
				Status:   StatusHighlyRecommended,
				Name:     "Travel itinerary",
				Priority: PriorityMedium,
			},
			{
				ID:       "photo",
				Status:   StatusOptional,
				Name:     "Photo",
				Priority: PriorityLow,
			},
		},
	}
}

// TestToLegacy verifies the canonical-to-legacy projection.
func (s *AdapterSuite) TestToLegacy() {
	legacy := ToLegacy(s.brainOutput(), "student")

	s.Run("envelope fields", func() {
		s.Equal("student", legacy.Type)
		s.Equal("DE", legacy.Country)
		s.Len(legacy.Checklist, 4)
	})

	s.Run("status folds into category", func() {
		s.Equal(CategoryRequired, legacy.Checklist[0].Category)
		s.Equal(CategoryHighlyRecommended, legacy.Checklist[1].Category)
		s.Equal(CategoryHighlyRecommended, legacy.Checklist[2].Category)
		s.Equal(CategoryOptional, legacy.Checklist[3].Category)
	})

	s.Run("required tracks the folded category", func() {
		s.True(legacy.Checklist[0].Required)
		s.False(legacy.Checklist[1].Required)
		s.False(legacy.Checklist[3].Required)
	})

	s.Run("id becomes document", func() {
		s.Equal("passport", legacy.Checklist[0].Document)
	})

	s.Run("localized maps survive", func() {
		s.Equal("Reisepass", legacy.Checklist[0].NameLocalized["de"])
	})
}

// TestToBrainOutput verifies the legacy-to-canonical reconstruction with its
// fallback chains.
func (s *AdapterSuite) TestToBrainOutput() {
	destination := DestinationContext{
		CountryCode:   "DE",
		CountryName:   "Germany",
		VisaTypeCode:  "student",
		VisaTypeLabel: "Student Visa",
		Disclaimer:    "Verify with the embassy.",
	}
	applicant := profile.Applicant{
		SponsorType:   profile.SponsorFamily,
		CurrentStatus: profile.StatusStudent,
	}

	s.Run("destination metadata wins over legacy envelope", func() {
		legacy := &LegacyResponse{Type: "old-type", Country: "XX"}
		brain := ToBrainOutput(legacy, applicant, destination)
		s.Equal("DE", brain.CountryCode)
		s.Equal("student", brain.VisaTypeCode)
		s.Equal("Germany", brain.CountryName)
		s.Equal("Verify with the embassy.", brain.Disclaimer)
	})

	s.Run("legacy envelope backs missing destination fields", func() {
		legacy := &LegacyResponse{Type: "work", Country: "JP"}
		brain := ToBrainOutput(legacy, applicant, DestinationContext{})
		s.Equal("JP", brain.CountryCode)
		s.Equal("work", brain.VisaTypeCode)
	})

	s.Run("profile summary rendered", func() {
		brain := ToBrainOutput(&LegacyResponse{}, applicant, destination)
		s.Equal("family-sponsored, student", brain.ProfileSummary)
	})

	s.Run("name falls back to document, description to name", func() {
		legacy := &LegacyResponse{Checklist: []LegacyItem{
			{Document: "bank_statement", Category: CategoryRequired, Required: true},
		}}
		brain := ToBrainOutput(legacy, applicant, destination)
		s.Require().Len(brain.RequiredDocuments, 1)
		item := brain.RequiredDocuments[0]
		s.Equal("bank_statement", item.ID)
		s.Equal("bank_statement", item.Name)
		s.Equal("bank_statement", item.Description)
	})

	s.Run("priority defaults from required flag", func() {
		legacy := &LegacyResponse{Checklist: []LegacyItem{
			{Document: "a", Category: CategoryRequired, Required: true},
			{Document: "b", Category: CategoryOptional, Required: false},
			{Document: "c", Category: CategoryOptional, Priority: "low"},
		}}
		brain := ToBrainOutput(legacy, applicant, destination)
		s.Equal(PriorityHigh, brain.RequiredDocuments[0].Priority)
		s.Equal(PriorityMedium, brain.RequiredDocuments[1].Priority)
		s.Equal(PriorityLow, brain.RequiredDocuments[2].Priority)
	})

	s.Run("conditional inferred from recommended non-required", func() {
		legacy := &LegacyResponse{Checklist: []LegacyItem{
			{Document: "a", Category: CategoryHighlyRecommended, Required: false},
			{Document: "b", Category: CategoryHighlyRecommended, Required: true},
		}}
		brain := ToBrainOutput(legacy, applicant, destination)
		s.True(brain.RequiredDocuments[0].IsConditional)
		s.False(brain.RequiredDocuments[1].IsConditional)
	})

	s.Run("unknown category defaults to optional", func() {
		legacy := &LegacyResponse{Checklist: []LegacyItem{
			{Document: "a", Category: "mystery"},
		}}
		brain := ToBrainOutput(legacy, applicant, destination)
		s.Equal(StatusOptional, brain.RequiredDocuments[0].Status)
	})
}

// TestRoundTrip verifies the core fields survive canonical -> legacy ->
// canonical.
func (s *AdapterSuite) TestRoundTrip() {
	original := s.brainOutput()
	destination := DestinationContext{
		CountryCode:   original.CountryCode,
		CountryName:   original.CountryName,
		VisaTypeCode:  original.VisaTypeCode,
		VisaTypeLabel: original.VisaTypeLabel,
	}

	rebuilt := ToBrainOutput(ToLegacy(original, "student"), profile.Applicant{}, destination)

	s.Equal(original.CountryCode, rebuilt.CountryCode)
	s.Equal(original.VisaTypeCode, rebuilt.VisaTypeCode)
	s.Require().Len(rebuilt.RequiredDocuments, len(original.RequiredDocuments))
	for i, item := range rebuilt.RequiredDocuments {
		s.Equal(original.RequiredDocuments[i].ID, item.ID)
		s.Equal(original.RequiredDocuments[i].Name, item.Name)
	}

	// CONDITIONAL folds into the recommended category on the way out, so it
	// comes back as HIGHLY_RECOMMENDED with the conditional flag preserved.
	s.Equal(StatusHighlyRecommended, rebuilt.RequiredDocuments[1].Status)
	s.True(rebuilt.RequiredDocuments[1].IsConditional)
}

// TestSummarize covers the profile summary renderer.
func (s *AdapterSuite) TestSummarize() {
	s.Equal("", Summarize(profile.Applicant{}))
	s.Equal("self-sponsored", Summarize(profile.Applicant{SponsorType: profile.SponsorSelf}))
	s.Equal("employed, high risk", Summarize(profile.Applicant{
		CurrentStatus: profile.StatusEmployed,
		RiskScore:     profile.RiskScore{Level: profile.RiskHigh},
	}))
}
