package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "visapath/pkg/domain-errors"
	"visapath/pkg/platform/httputil"
	"visapath/pkg/platform/sentinel"
	"visapath/pkg/requestcontext"
)

// Store defines the explanation cache operations the handler needs.
type Store interface {
	Get(ctx context.Context, applicationID, documentType string) (string, error)
	Put(ctx context.Context, applicationID, documentType, text string) error
	Invalidate(ctx context.Context, applicationID, documentType string) error
}

// Handler exposes the explanation cache over HTTP. A nil store (Redis not
// configured) answers every route with unavailable so clients fall back to
// regeneration.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Register mounts explanation cache endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/explanations/{applicationId}/{documentType}", h.HandleGet)
	r.Put("/explanations/{applicationId}/{documentType}", h.HandlePut)
	r.Delete("/explanations/{applicationId}/{documentType}", h.HandleInvalidate)
}

// PutRequest is the body of PUT /explanations/{applicationId}/{documentType}.
type PutRequest struct {
	Text string `json:"text"`
}

// HandleGet handles explanation lookups. Misses are a plain not_found.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store, ok := h.available(w)
	if !ok {
		return
	}

	text, err := store.Get(ctx, chi.URLParam(r, "applicationId"), chi.URLParam(r, "documentType"))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no cached explanation"))
			return
		}
		h.logger.ErrorContext(ctx, "explanation lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "explanation lookup"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"text": text})
}

// HandlePut stores an explanation under the cache TTL.
func (h *Handler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	store, ok := h.available(w)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[PutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	if req.Text == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInvalidInput, "text is required"))
		return
	}

	if err := store.Put(ctx, chi.URLParam(r, "applicationId"), chi.URLParam(r, "documentType"), req.Text); err != nil {
		h.logger.ErrorContext(ctx, "explanation store failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "explanation store"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleInvalidate drops a cached explanation, used when the underlying rule
// set changes before the TTL expires.
func (h *Handler) HandleInvalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store, ok := h.available(w)
	if !ok {
		return
	}

	if err := store.Invalidate(ctx, chi.URLParam(r, "applicationId"), chi.URLParam(r, "documentType")); err != nil {
		h.logger.ErrorContext(ctx, "explanation invalidation failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "explanation invalidation"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) available(w http.ResponseWriter) (Store, bool) {
	if h.store == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnavailable, "explanation cache not configured"))
		return nil, false
	}
	return h.store, true
}
