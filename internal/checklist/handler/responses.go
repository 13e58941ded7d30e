package handler

import (
	"visapath/internal/checklist"
	"visapath/internal/schema"
)

// ResolveResponse is the HTTP response for POST /checklist/resolve.
type ResolveResponse struct {
	RuleSetID string              `json:"ruleSetId"`
	Version   int                 `json:"version"`
	Checklist *schema.BrainOutput `json:"checklist"`
	Warnings  []checklist.Warning `json:"warnings,omitempty"`
}

// LegacyResolveResponse is the response when the caller asks for the legacy
// shape via ?format=legacy.
type LegacyResolveResponse struct {
	RuleSetID string                 `json:"ruleSetId"`
	Version   int                    `json:"version"`
	Checklist *schema.LegacyResponse `json:"checklist"`
	Warnings  []checklist.Warning    `json:"warnings,omitempty"`
}

// ParseResponse is the HTTP response for POST /checklist/parse.
type ParseResponse struct {
	Format    string                 `json:"format"`
	Checklist *schema.BrainOutput    `json:"checklist,omitempty"`
	Legacy    *schema.LegacyResponse `json:"legacy,omitempty"`
}

// FromResolution shapes a resolution and its canonical checklist.
func FromResolution(resolution *checklist.Resolution, output *schema.BrainOutput) *ResolveResponse {
	return &ResolveResponse{
		RuleSetID: resolution.RuleSetID.String(),
		Version:   resolution.Version,
		Checklist: output,
		Warnings:  resolution.Warnings,
	}
}

// FromDetection shapes a classification result. Unknown payloads carry only
// the format discriminator.
func FromDetection(detection schema.Detection) *ParseResponse {
	return &ParseResponse{
		Format:    string(detection.Format),
		Checklist: detection.Brain,
		Legacy:    detection.Legacy,
	}
}
