// Package audit captures an append-only trail of rule set mutations and
// resolution warnings. Approvals change what thousands of applicants are told
// to submit; the trail is how a bad rule set gets traced back to the change
// that introduced it.
package audit

import (
	"time"
)

// Action identifies what happened.
type Action string

const (
	ActionDraftCreated    Action = "ruleset_draft_created"
	ActionDraftPatched    Action = "ruleset_draft_patched"
	ActionVersionApproved Action = "ruleset_version_approved"
	ActionConditionFailed Action = "resolution_condition_failed"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	Action      Action    `json:"action"`
	Actor       string    `json:"actor,omitempty"`
	Client      string    `json:"client,omitempty"`
	RequestID   string    `json:"requestId,omitempty"`
	RuleSetID   string    `json:"ruleSetId,omitempty"`
	CountryCode string    `json:"countryCode,omitempty"`
	VisaType    string    `json:"visaType,omitempty"`
	Version     int       `json:"version,omitempty"`
	// Condition failure detail, set for ActionConditionFailed.
	DocumentType string `json:"documentType,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Reason       string `json:"reason,omitempty"`
}
