package schema

import (
	"encoding/json"
)

// Format tags which schema an externally supplied payload was classified as.
type Format string

const (
	FormatBrain   Format = "brain"
	FormatLegacy  Format = "legacy"
	FormatUnknown Format = "unknown"
)

// Detection is the tagged-union result of DetectAndParse. Exactly one of
// Brain/Legacy is non-nil unless Format is FormatUnknown, in which case both
// are nil. Callers branch on Format instead of probing properties.
type Detection struct {
	Format Format          `json:"format"`
	Brain  *BrainOutput    `json:"brain,omitempty"`
	Legacy *LegacyResponse `json:"legacy,omitempty"`
}

// DetectAndParse classifies a raw payload (typically AI-generated) as one of
// the two checklist schemas and parses it. The contract is best-effort
// classify, not validate: malformed JSON and unrecognized shapes come back as
// FormatUnknown, never as an error.
//
// Classification: canonical when top-level countryCode, visaTypeCode, and an
// array requiredDocuments are all present; legacy when an array checklist is
// present.
func DetectAndParse(raw string) Detection {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return Detection{Format: FormatUnknown}
	}

	if hasString(fields, "countryCode") && hasString(fields, "visaTypeCode") && hasArray(fields, "requiredDocuments") {
		var brain BrainOutput
		if err := json.Unmarshal([]byte(raw), &brain); err != nil {
			return Detection{Format: FormatUnknown}
		}
		return Detection{Format: FormatBrain, Brain: &brain}
	}

	if hasArray(fields, "checklist") {
		var legacy LegacyResponse
		if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
			return Detection{Format: FormatUnknown}
		}
		return Detection{Format: FormatLegacy, Legacy: &legacy}
	}

	return Detection{Format: FormatUnknown}
}

func hasString(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var s string
	return json.Unmarshal(raw, &s) == nil
}

func hasArray(fields map[string]json.RawMessage, key string) bool {
	raw, ok := fields[key]
	if !ok {
		return false
	}
	var arr []json.RawMessage
	return json.Unmarshal(raw, &arr) == nil
}
