package schema

import (
	"visapath/internal/profile"
)

// DestinationContext carries the display metadata ToBrainOutput needs to
// rebuild a canonical envelope from the legacy shape.
type DestinationContext struct {
	CountryCode   string
	CountryName   string
	VisaTypeCode  string
	VisaTypeLabel string
	Disclaimer    string
}

// ToLegacy maps a canonical checklist to the legacy client shape.
func ToLegacy(brain *BrainOutput, visaType string) *LegacyResponse {
	checklist := make([]LegacyItem, 0, len(brain.RequiredDocuments))
	for _, item := range brain.RequiredDocuments {
		checklist = append(checklist, toLegacyItem(item))
	}
	return &LegacyResponse{
		Type:      visaType,
		Country:   brain.CountryCode,
		Checklist: checklist,
	}
}

func toLegacyItem(item BrainItem) LegacyItem {
	category := statusToCategory(item.Status)
	return LegacyItem{
		Document:               item.ID,
		Category:               category,
		Required:               category == CategoryRequired,
		WhoNeedsIt:             item.WhoNeedsIt,
		Name:                   item.Name,
		NameLocalized:          copyLocalized(item.NameLocalized),
		Description:            item.Description,
		DescriptionLocalized:   copyLocalized(item.DescriptionLocalized),
		WhereToObtain:          item.WhereToObtain,
		WhereToObtainLocalized: copyLocalized(item.WhereToObtainLocalized),
		Priority:               string(item.Priority),
	}
}

// statusToCategory folds the four canonical statuses into the three legacy
// categories. Unrecognized statuses default to optional rather than failing:
// the legacy surface is a best-effort view.
func statusToCategory(status ItemStatus) string {
	switch status {
	case StatusRequired:
		return CategoryRequired
	case StatusHighlyRecommended, StatusConditional:
		return CategoryHighlyRecommended
	case StatusOptional:
		return CategoryOptional
	default:
		return CategoryOptional
	}
}

// ToBrainOutput rebuilds a canonical checklist from the legacy shape.
// Missing localized fields fall back to the English/default field, then to the
// raw document identifier, never to an empty string unless every fallback is
// empty.
func ToBrainOutput(legacy *LegacyResponse, applicant profile.Applicant, destination DestinationContext) *BrainOutput {
	items := make([]BrainItem, 0, len(legacy.Checklist))
	for _, item := range legacy.Checklist {
		items = append(items, toBrainItem(item))
	}
	return &BrainOutput{
		CountryCode:       fallback(destination.CountryCode, legacy.Country),
		CountryName:       destination.CountryName,
		VisaTypeCode:      fallback(destination.VisaTypeCode, legacy.Type),
		VisaTypeLabel:     destination.VisaTypeLabel,
		ProfileSummary:    Summarize(applicant),
		RequiredDocuments: items,
		Disclaimer:        destination.Disclaimer,
	}
}

func toBrainItem(item LegacyItem) BrainItem {
	status := categoryToStatus(item.Category)
	priority := ItemPriority(item.Priority)
	if priority == "" {
		if item.Required {
			priority = PriorityHigh
		} else {
			priority = PriorityMedium
		}
	}
	name := fallback(item.Name, item.Document)
	return BrainItem{
		ID:                     item.Document,
		Status:                 status,
		WhoNeedsIt:             item.WhoNeedsIt,
		Name:                   name,
		NameLocalized:          copyLocalized(item.NameLocalized),
		Description:            fallback(item.Description, name),
		DescriptionLocalized:   copyLocalized(item.DescriptionLocalized),
		WhereToObtain:          item.WhereToObtain,
		WhereToObtainLocalized: copyLocalized(item.WhereToObtainLocalized),
		Priority:               priority,
		IsCoreRequired:         item.Required,
		IsConditional:          item.Category == CategoryHighlyRecommended && !item.Required,
	}
}

func categoryToStatus(category string) ItemStatus {
	switch category {
	case CategoryRequired:
		return StatusRequired
	case CategoryHighlyRecommended:
		return StatusHighlyRecommended
	case CategoryOptional:
		return StatusOptional
	default:
		return StatusOptional
	}
}

// fallback returns the first non-empty value.
func fallback(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func copyLocalized(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Summarize renders a short human-readable profile description used in the
// canonical envelope.
func Summarize(a profile.Applicant) string {
	summary := ""
	if a.SponsorType != "" {
		summary = string(a.SponsorType) + "-sponsored"
	}
	if a.CurrentStatus != "" {
		if summary != "" {
			summary += ", "
		}
		summary += string(a.CurrentStatus)
	}
	if a.RiskScore.Level != "" {
		if summary != "" {
			summary += ", "
		}
		summary += string(a.RiskScore.Level) + " risk"
	}
	return summary
}
