package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"visapath/internal/ruleset"
	"visapath/pkg/domain"
	dErrors "visapath/pkg/domain-errors"
	"visapath/pkg/platform/httputil"
	"visapath/pkg/requestcontext"
)

// Service defines the interface for rule set administration.
type Service interface {
	ActiveVersion(ctx context.Context, country domain.CountryCode, visaType domain.VisaType) (*ruleset.Version, error)
	FindByID(ctx context.Context, id domain.RuleSetID) (*ruleset.Version, error)
	CreateDraft(ctx context.Context, country domain.CountryCode, visaType domain.VisaType, documents []ruleset.Document) (*ruleset.Version, error)
	Approve(ctx context.Context, id domain.RuleSetID) (*ruleset.Version, error)
	Patch(ctx context.Context, id domain.RuleSetID, documents []ruleset.Document) (*ruleset.Version, error)
}

// Handler wires rule set administration endpoints to the rule set service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a rule set handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the administrative endpoints. The enclosing router group is
// expected to enforce admin authentication.
func (h *Handler) Register(r chi.Router) {
	r.Post("/rulesets", h.HandleCreateDraft)
	r.Post("/rulesets/{id}/approve", h.HandleApprove)
	r.Patch("/rulesets/{id}", h.HandlePatch)
	r.Get("/rulesets/active", h.HandleActive)
	r.Get("/rulesets/{id}", h.HandleGet)
}

// HandleGet handles GET /admin/rulesets/{id} requests, returning drafts and
// approved versions alike.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseRuleSetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	version, err := h.service.FindByID(ctx, id)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logFailure(ctx, "version lookup failed", requestcontext.RequestID(ctx), err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVersion(version))
}

// HandleCreateDraft handles POST /admin/rulesets requests.
func (h *Handler) HandleCreateDraft(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CreateDraftRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, visaType, err := req.ParsePair()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	created, err := h.service.CreateDraft(ctx, country, visaType, req.Documents)
	if err != nil {
		h.logFailure(ctx, "draft creation failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft created",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
		"rule_set_id", created.ID.String(),
		"version", created.Number,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusCreated, FromVersion(created))
}

// HandleApprove handles POST /admin/rulesets/{id}/approve requests.
func (h *Handler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseRuleSetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	approved, err := h.service.Approve(ctx, id)
	if err != nil {
		h.logFailure(ctx, "approval failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "version approved",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
		"rule_set_id", approved.ID.String(),
		"version", approved.Number,
	)
	httputil.WriteJSON(w, http.StatusOK, FromVersion(approved))
}

// HandlePatch handles PATCH /admin/rulesets/{id} requests.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseRuleSetID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[PatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	patched, err := h.service.Patch(ctx, id, req.Documents)
	if err != nil {
		h.logFailure(ctx, "patch failed", requestID, err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "draft patched",
		"request_id", requestID,
		"admin", requestcontext.AdminSubject(ctx),
		"rule_set_id", patched.ID.String(),
		"version", patched.Number,
	)
	httputil.WriteJSON(w, http.StatusOK, FromVersion(patched))
}

// HandleActive handles GET /admin/rulesets/active?countryCode=..&visaType=..
// requests.
func (h *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	country, err := domain.ParseCountryCode(r.URL.Query().Get("countryCode"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	visaType, err := domain.ParseVisaType(r.URL.Query().Get("visaType"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	active, err := h.service.ActiveVersion(ctx, country, visaType)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logFailure(ctx, "active lookup failed", requestcontext.RequestID(ctx), err)
		}
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromVersion(active))
}

// logFailure logs at error level for internal failures and warn level for
// expected rejections.
func (h *Handler) logFailure(ctx context.Context, msg, requestID string, err error) {
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "request_id", requestID, "error", err)
		return
	}
	h.logger.WarnContext(ctx, msg, "request_id", requestID, "error", err)
}
