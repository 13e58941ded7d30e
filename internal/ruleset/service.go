package ruleset

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"visapath/internal/audit"
	"visapath/internal/condition"
	"visapath/internal/ruleset/metrics"
	"visapath/pkg/domain"
	dErrors "visapath/pkg/domain-errors"
	"visapath/pkg/platform/sentinel"
	"visapath/pkg/requestcontext"
)

// Service wraps the store with authoring-time validation and audit emission.
// Condition syntax is checked on every write so a bad expression is rejected
// when an author saves it, not discovered when an applicant resolves against
// it.
//
// The service performs no authorization; callers must ensure only
// administrative identities reach the mutation operations.
type Service struct {
	store   Store
	audit   *audit.Publisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func NewService(store Store, auditPublisher *audit.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		audit:   auditPublisher,
		metrics: m,
		logger:  logger,
	}
}

// ActiveVersion returns the version resolution must use for the pair: the
// highest-numbered approved one. Drafts are never returned.
func (s *Service) ActiveVersion(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (*Version, error) {
	start := time.Now()
	version, err := s.store.ActiveVersion(ctx, country, visaType)
	s.metrics.ObserveActiveLookup(time.Since(start))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no requirements available for "+country.String()+"/"+visaType.String())
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load active rule set")
	}
	return version, nil
}

// FindByID returns any version, draft or approved.
func (s *Service) FindByID(ctx context.Context, id domain.RuleSetID) (*Version, error) {
	version, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "rule set version not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load rule set version")
	}
	return version, nil
}

// CreateDraft validates the document list and persists a new draft with the
// next version number for the pair.
func (s *Service) CreateDraft(ctx context.Context, country domain.CountryCode, visaType domain.VisaType, documents []Document) (*Version, error) {
	if err := s.validateDocuments(documents); err != nil {
		s.metrics.IncrementMutation("create_draft", "rejected")
		return nil, err
	}

	draft := &Version{
		ID:          domain.NewRuleSetID(),
		CountryCode: country,
		VisaType:    visaType,
		Documents:   append([]Document{}, documents...),
		CreatedAt:   requestcontext.Now(ctx),
	}
	created, err := s.store.CreateDraft(ctx, draft)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			s.metrics.IncrementMutation("create_draft", "conflict")
			return nil, dErrors.New(dErrors.CodeConflict, "a concurrent write took this version number; retry")
		}
		s.metrics.IncrementMutation("create_draft", "error")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create draft")
	}

	if err := s.emit(ctx, audit.ActionDraftCreated, created); err != nil {
		return nil, err
	}
	s.metrics.IncrementMutation("create_draft", "ok")
	s.logger.InfoContext(ctx, "rule set draft created",
		"rule_set_id", created.ID.String(),
		"country", created.CountryCode.String(),
		"visa_type", created.VisaType.String(),
		"version", created.Number,
	)
	return created, nil
}

// Approve marks a draft approved, making it the active version for its pair
// if its number is the highest approved one.
func (s *Service) Approve(ctx context.Context, id domain.RuleSetID) (*Version, error) {
	approved, err := s.store.Approve(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementMutation("approve", "not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "rule set version not found")
		case errors.Is(err, sentinel.ErrAlreadyApproved):
			s.metrics.IncrementMutation("approve", "already_approved")
			return nil, dErrors.New(dErrors.CodeAlreadyApproved, "rule set version is already approved")
		default:
			s.metrics.IncrementMutation("approve", "error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "approve rule set version")
		}
	}

	if err := s.emit(ctx, audit.ActionVersionApproved, approved); err != nil {
		return nil, err
	}
	s.metrics.IncrementMutation("approve", "ok")
	s.logger.InfoContext(ctx, "rule set version approved",
		"rule_set_id", approved.ID.String(),
		"country", approved.CountryCode.String(),
		"visa_type", approved.VisaType.String(),
		"version", approved.Number,
	)
	return approved, nil
}

// Patch replaces a draft's document list. Introducing conditions onto a
// version-1 draft bumps it to the pair's next free number (at least 2)
// before persisting.
func (s *Service) Patch(ctx context.Context, id domain.RuleSetID, documents []Document) (*Version, error) {
	if err := s.validateDocuments(documents); err != nil {
		s.metrics.IncrementMutation("patch", "rejected")
		return nil, err
	}

	patched, err := s.store.Patch(ctx, id, documents)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			s.metrics.IncrementMutation("patch", "not_found")
			return nil, dErrors.New(dErrors.CodeNotFound, "rule set version not found")
		case errors.Is(err, sentinel.ErrImmutableVersion):
			s.metrics.IncrementMutation("patch", "immutable")
			return nil, dErrors.New(dErrors.CodeImmutableVersion, "approved versions are write-once; create a new draft instead")
		case errors.Is(err, sentinel.ErrConflict):
			s.metrics.IncrementMutation("patch", "conflict")
			return nil, dErrors.New(dErrors.CodeConflict, "a concurrent write took this version number; retry")
		default:
			s.metrics.IncrementMutation("patch", "error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "patch rule set version")
		}
	}

	if err := s.emit(ctx, audit.ActionDraftPatched, patched); err != nil {
		return nil, err
	}
	s.metrics.IncrementMutation("patch", "ok")
	s.logger.InfoContext(ctx, "rule set draft patched",
		"rule_set_id", patched.ID.String(),
		"version", patched.Number,
		"documents", len(patched.Documents),
	)
	return patched, nil
}

// validateDocuments runs the static checks plus condition syntax validation.
func (s *Service) validateDocuments(documents []Document) error {
	if err := ValidateDocuments(documents); err != nil {
		return err
	}
	for _, doc := range documents {
		if !doc.Conditioned() {
			continue
		}
		if _, err := condition.Parse(doc.Condition); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInvalidExpression,
				"document "+doc.Type+" has an invalid condition")
		}
	}
	return nil
}

// emit writes the mutation to the audit trail. Mutations are fail-closed on
// audit: an approval that cannot be recorded did not happen as far as the
// caller is concerned.
func (s *Service) emit(ctx context.Context, action audit.Action, version *Version) error {
	err := s.audit.Emit(ctx, audit.Event{
		Action:      action,
		Actor:       requestcontext.AdminSubject(ctx),
		Client:      requestcontext.Client(ctx),
		RequestID:   requestcontext.RequestID(ctx),
		RuleSetID:   version.ID.String(),
		CountryCode: version.CountryCode.String(),
		VisaType:    version.VisaType.String(),
		Version:     version.Number,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "audit write failed",
			"action", string(action),
			"rule_set_id", version.ID.String(),
			"error", err,
		)
		return dErrors.Wrap(err, dErrors.CodeInternal, "record audit event")
	}
	return nil
}
