package checklist

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"visapath/internal/audit"
	"visapath/internal/checklist/metrics"
	"visapath/internal/condition"
	"visapath/internal/destination"
	"visapath/internal/profile"
	"visapath/internal/ruleset"
	"visapath/internal/schema"
	"visapath/pkg/domain"
	dErrors "visapath/pkg/domain-errors"
	"visapath/pkg/requestcontext"
)

// RuleSetSource is the slice of the rule set service resolution needs.
type RuleSetSource interface {
	ActiveVersion(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (*ruleset.Version, error)
}

// Service is the read path: it never writes to the rule set store. Warnings
// from fail-open condition failures are returned inline and forwarded to the
// audit inbox so the trail survives the ephemeral response.
type Service struct {
	rules      RuleSetSource
	catalog    destination.Catalog
	evaluator  *condition.Evaluator
	auditInbox chan<- audit.Event
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

func NewService(
	rules RuleSetSource,
	catalog destination.Catalog,
	evaluator *condition.Evaluator,
	auditInbox chan<- audit.Event,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		rules:      rules,
		catalog:    catalog,
		evaluator:  evaluator,
		auditInbox: auditInbox,
		metrics:    m,
		logger:     logger,
	}
}

// Resolve produces the applicant-specific document list for the pair's active
// rule set version. Output order matches the rule set's declared order;
// calling it twice with the same inputs and no intervening mutation yields
// identical output.
func (s *Service) Resolve(ctx context.Context, country domain.CountryCode, visaType domain.VisaType, applicant profile.Applicant) (*Resolution, error) {
	start := time.Now()

	version, err := s.rules.ActiveVersion(ctx, country, visaType)
	if err != nil {
		s.metrics.IncrementResolution(string(dErrors.CodeOf(err)))
		return nil, err
	}

	documents, warnings := resolveDocuments(s.evaluator, version.Documents, applicant)
	s.recordWarnings(ctx, version, warnings)

	s.metrics.IncrementResolution("ok")
	s.metrics.ObserveResolveLatency(time.Since(start))
	s.logger.InfoContext(ctx, "checklist resolved",
		"request_id", requestcontext.RequestID(ctx),
		"country", country.String(),
		"visa_type", visaType.String(),
		"version", version.Number,
		"documents", len(documents),
		"warnings", len(warnings),
	)

	return &Resolution{
		RuleSetID:   version.ID,
		Version:     version.Number,
		CountryCode: version.CountryCode,
		VisaType:    version.VisaType,
		Documents:   documents,
		Warnings:    warnings,
	}, nil
}

// ResolveBrainOutput resolves the applicant and shapes the result as the
// canonical checklist envelope. Rule set and destination metadata are fetched
// concurrently.
func (s *Service) ResolveBrainOutput(ctx context.Context, country domain.CountryCode, visaType domain.VisaType, applicant profile.Applicant) (*schema.BrainOutput, *Resolution, error) {
	var (
		resolution *Resolution
		info       destination.Info
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		resolution, err = s.Resolve(gctx, country, visaType, applicant)
		return err
	})
	g.Go(func() error {
		var err error
		info, err = s.catalog.Lookup(gctx, country, visaType)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return buildBrainOutput(resolution, info, applicant), resolution, nil
}

// ParseGenerated classifies an externally supplied payload and normalizes it
// to the canonical shape when possible. Classification failures are a result
// value, not an error.
func (s *Service) ParseGenerated(ctx context.Context, raw string, applicant profile.Applicant, country domain.CountryCode, visaType domain.VisaType) schema.Detection {
	detection := schema.DetectAndParse(raw)
	s.metrics.IncrementDetectedFormat(string(detection.Format))

	if detection.Format == schema.FormatLegacy {
		info, err := s.catalog.Lookup(ctx, country, visaType)
		if err == nil {
			detection.Brain = schema.ToBrainOutput(detection.Legacy, applicant, schema.DestinationContext{
				CountryCode:   info.CountryCode,
				CountryName:   info.CountryName,
				VisaTypeCode:  info.VisaTypeCode,
				VisaTypeLabel: info.VisaTypeLabel,
				Disclaimer:    info.Disclaimer,
			})
		}
	}

	if detection.Format == schema.FormatUnknown {
		s.logger.WarnContext(ctx, "unclassifiable checklist payload",
			"request_id", requestcontext.RequestID(ctx),
			"payload_bytes", len(raw),
		)
	}
	return detection
}

// recordWarnings forwards fail-open failures to the audit inbox without
// blocking the read path. A full inbox drops the event but keeps the warning
// in the response.
func (s *Service) recordWarnings(ctx context.Context, version *ruleset.Version, warnings []Warning) {
	for _, w := range warnings {
		s.metrics.IncrementConditionFailure(reasonLabel(w.Reason))
		s.logger.WarnContext(ctx, "condition failed open",
			"request_id", requestcontext.RequestID(ctx),
			"rule_set_id", version.ID.String(),
			"document_type", w.DocumentType,
			"reason", w.Reason,
		)
		if s.auditInbox == nil {
			continue
		}
		event := audit.Event{
			Timestamp:    time.Now(),
			Action:       audit.ActionConditionFailed,
			RequestID:    requestcontext.RequestID(ctx),
			RuleSetID:    version.ID.String(),
			CountryCode:  version.CountryCode.String(),
			VisaType:     version.VisaType.String(),
			Version:      version.Number,
			DocumentType: w.DocumentType,
			Condition:    w.Condition,
			Reason:       w.Reason,
		}
		select {
		case s.auditInbox <- event:
		default:
		}
	}
}

// reasonLabel reduces a warning reason ("kind: detail") to its kind for
// metric labels.
func reasonLabel(reason string) string {
	kind, _, found := strings.Cut(reason, ":")
	if !found {
		return reason
	}
	return kind
}

// buildBrainOutput shapes a resolution into the canonical checklist. Excluded
// documents are omitted; conditioned documents that stay included surface as
// CONDITIONAL so clients can flag them.
func buildBrainOutput(resolution *Resolution, info destination.Info, applicant profile.Applicant) *schema.BrainOutput {
	items := make([]schema.BrainItem, 0, len(resolution.Documents))
	for _, doc := range resolution.Documents {
		if !doc.Included {
			continue
		}
		items = append(items, toBrainItem(doc))
	}
	return &schema.BrainOutput{
		CountryCode:       info.CountryCode,
		CountryName:       info.CountryName,
		VisaTypeCode:      info.VisaTypeCode,
		VisaTypeLabel:     info.VisaTypeLabel,
		ProfileSummary:    schema.Summarize(applicant),
		RequiredDocuments: items,
		Disclaimer:        info.Disclaimer,
	}
}

func toBrainItem(doc ResolvedDocument) schema.BrainItem {
	conditioned := doc.Conditioned()
	status := categoryStatus(doc.Category)
	if conditioned {
		status = schema.StatusConditional
	}
	return schema.BrainItem{
		ID:             doc.Type,
		Status:         status,
		Name:           doc.Type,
		Description:    doc.Description,
		Priority:       categoryPriority(doc.Category),
		IsCoreRequired: doc.Category == ruleset.CategoryRequired && !conditioned,
		IsConditional:  conditioned,
	}
}

func categoryStatus(category ruleset.DocumentCategory) schema.ItemStatus {
	switch category {
	case ruleset.CategoryRequired:
		return schema.StatusRequired
	case ruleset.CategoryHighlyRecommended:
		return schema.StatusHighlyRecommended
	default:
		return schema.StatusOptional
	}
}

func categoryPriority(category ruleset.DocumentCategory) schema.ItemPriority {
	switch category {
	case ruleset.CategoryRequired:
		return schema.PriorityHigh
	case ruleset.CategoryHighlyRecommended:
		return schema.PriorityMedium
	default:
		return schema.PriorityLow
	}
}
