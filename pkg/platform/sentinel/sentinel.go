package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in store
// - ErrAlreadyApproved: version already left the draft state
// - ErrImmutableVersion: write attempted against an approved version
// - ErrConflict: concurrent mutation lost the race
// - ErrUnavailable: backing service temporarily unavailable
//
// For validation errors (bad input, malformed expressions), use
// pkg/domain-errors directly.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyApproved  = errors.New("already approved")
	ErrImmutableVersion = errors.New("immutable version")
	ErrConflict         = errors.New("conflict")
	ErrUnavailable      = errors.New("unavailable")
)
