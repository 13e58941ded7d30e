// Package schema defines the two checklist representations and the mapping
// between them: the canonical "brain" schema produced by resolution and the
// legacy client schema older consumers still require.
package schema

// ItemStatus is the canonical importance marker of a checklist item.
type ItemStatus string

const (
	StatusRequired          ItemStatus = "REQUIRED"
	StatusHighlyRecommended ItemStatus = "HIGHLY_RECOMMENDED"
	StatusOptional          ItemStatus = "OPTIONAL"
	StatusConditional       ItemStatus = "CONDITIONAL"
)

// Legacy category values.
const (
	CategoryRequired          = "required"
	CategoryHighlyRecommended = "highly_recommended"
	CategoryOptional          = "optional"
)

// ItemPriority orders items for presentation.
type ItemPriority string

const (
	PriorityHigh   ItemPriority = "high"
	PriorityMedium ItemPriority = "medium"
	PriorityLow    ItemPriority = "low"
)

// BrainItem is one document entry in the canonical checklist.
type BrainItem struct {
	ID                     string            `json:"id"`
	Status                 ItemStatus        `json:"status"`
	WhoNeedsIt             string            `json:"whoNeedsIt,omitempty"`
	Name                   string            `json:"name"`
	NameLocalized          map[string]string `json:"nameLocalized,omitempty"`
	Description            string            `json:"description,omitempty"`
	DescriptionLocalized   map[string]string `json:"descriptionLocalized,omitempty"`
	WhereToObtain          string            `json:"whereToObtain,omitempty"`
	WhereToObtainLocalized map[string]string `json:"whereToObtainLocalized,omitempty"`
	Priority               ItemPriority      `json:"priority"`
	IsCoreRequired         bool              `json:"isCoreRequired"`
	IsConditional          bool              `json:"isConditional"`
}

// BrainOutput is the canonical checklist for one applicant and destination.
type BrainOutput struct {
	CountryCode       string      `json:"countryCode"`
	CountryName       string      `json:"countryName"`
	VisaTypeCode      string      `json:"visaTypeCode"`
	VisaTypeLabel     string      `json:"visaTypeLabel"`
	ProfileSummary    string      `json:"profileSummary,omitempty"`
	RequiredDocuments []BrainItem `json:"requiredDocuments"`
	Disclaimer        string      `json:"disclaimer,omitempty"`
}

// LegacyItem mirrors BrainItem in the older client shape: category instead of
// status and a flat required flag instead of isCoreRequired/isConditional.
type LegacyItem struct {
	Document               string            `json:"document"`
	Category               string            `json:"category"`
	Required               bool              `json:"required"`
	WhoNeedsIt             string            `json:"whoNeedsIt,omitempty"`
	Name                   string            `json:"name,omitempty"`
	NameLocalized          map[string]string `json:"nameLocalized,omitempty"`
	Description            string            `json:"description,omitempty"`
	DescriptionLocalized   map[string]string `json:"descriptionLocalized,omitempty"`
	WhereToObtain          string            `json:"whereToObtain,omitempty"`
	WhereToObtainLocalized map[string]string `json:"whereToObtainLocalized,omitempty"`
	Priority               string            `json:"priority,omitempty"`
}

// LegacyResponse is the older client-facing checklist envelope.
type LegacyResponse struct {
	Type      string       `json:"type"`
	Country   string       `json:"country"`
	Checklist []LegacyItem `json:"checklist"`
}
