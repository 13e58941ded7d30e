package ruleset

import (
	"context"

	"visapath/pkg/domain"
)

// Store persists rule set versions. Implementations must make the lifecycle
// transitions atomic:
//
//   - CreateDraft assigns the next version number for the pair (bumped to 2
//     when the documents carry conditions and the pair has no history).
//   - Approve is linearizable with concurrent ActiveVersion reads: a reader
//     may see the old or the new active version, never a partially approved
//     one.
//   - Patch only touches drafts and bumps a version-1 draft to 2 when the new
//     documents introduce conditions.
//
// Stores return sentinel errors (pkg/platform/sentinel); the service
// translates them into coded domain errors.
type Store interface {
	// ActiveVersion returns the highest approved version for the pair, or
	// sentinel.ErrNotFound when no approved version exists.
	ActiveVersion(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (*Version, error)

	// FindByID returns any version, draft or approved.
	FindByID(ctx context.Context, id domain.RuleSetID) (*Version, error)

	// CreateDraft persists draft with a store-assigned version number and
	// returns the stored value.
	CreateDraft(ctx context.Context, draft *Version) (*Version, error)

	// Approve marks a draft approved. sentinel.ErrNotFound for unknown ids,
	// sentinel.ErrAlreadyApproved when called twice.
	Approve(ctx context.Context, id domain.RuleSetID) (*Version, error)

	// Patch replaces a draft's document list. sentinel.ErrImmutableVersion
	// when the version is approved.
	Patch(ctx context.Context, id domain.RuleSetID, documents []Document) (*Version, error)
}
