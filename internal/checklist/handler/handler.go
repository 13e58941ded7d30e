package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"visapath/internal/checklist"
	"visapath/internal/profile"
	"visapath/internal/schema"
	"visapath/pkg/domain"
	dErrors "visapath/pkg/domain-errors"
	"visapath/pkg/platform/httputil"
	"visapath/pkg/requestcontext"
)

// Service defines the interface for checklist operations.
type Service interface {
	ResolveBrainOutput(ctx context.Context, country domain.CountryCode, visaType domain.VisaType, applicant profile.Applicant) (*schema.BrainOutput, *checklist.Resolution, error)
	ParseGenerated(ctx context.Context, raw string, applicant profile.Applicant, country domain.CountryCode, visaType domain.VisaType) schema.Detection
}

// Handler wires checklist endpoints to the checklist service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a checklist handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts checklist endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/checklist/resolve", h.HandleResolve)
	r.Post("/checklist/parse", h.HandleParse)
}

// HandleResolve handles POST /checklist/resolve requests. The optional
// ?format=legacy query reshapes the checklist for callers still on the old
// contract.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[ResolveRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, visaType, applicant, err := req.Parse()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	output, resolution, err := h.service.ResolveBrainOutput(ctx, country, visaType, applicant)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeNotFound) {
			h.logger.ErrorContext(ctx, "checklist resolution failed",
				"request_id", requestID,
				"country", country.String(),
				"visa_type", visaType.String(),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checklist request served",
		"request_id", requestID,
		"country", country.String(),
		"visa_type", visaType.String(),
		"version", resolution.Version,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if strings.EqualFold(r.URL.Query().Get("format"), "legacy") {
		httputil.WriteJSON(w, http.StatusOK, &LegacyResolveResponse{
			RuleSetID: resolution.RuleSetID.String(),
			Version:   resolution.Version,
			Checklist: schema.ToLegacy(output, visaType.String()),
			Warnings:  resolution.Warnings,
		})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromResolution(resolution, output))
}

// HandleParse handles POST /checklist/parse requests. Classification never
// fails; malformed payloads come back with format "unknown".
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[ParseRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	country, err := domain.ParseCountryCode(req.CountryCode)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	visaType, err := domain.ParseVisaType(req.VisaType)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	detection := h.service.ParseGenerated(ctx, req.Content, req.Profile, country, visaType)

	h.logger.InfoContext(ctx, "payload classified",
		"request_id", requestID,
		"format", detection.Format,
	)
	httputil.WriteJSON(w, http.StatusOK, FromDetection(detection))
}
