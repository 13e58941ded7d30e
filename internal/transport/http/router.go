// Package httptransport assembles the HTTP surface: public resolution
// endpoints, the authenticated administration group, and operational routes.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	checklisthandler "visapath/internal/checklist/handler"
	explanationhandler "visapath/internal/explanation/handler"
	"visapath/internal/platform/middleware"
	rulesethandler "visapath/internal/ruleset/handler"
	"visapath/pkg/platform/httputil"
)

// Deps is everything the router needs wired in.
type Deps struct {
	Checklist    *checklisthandler.Handler
	RuleSets     *rulesethandler.Handler
	Explanations *explanationhandler.Handler
	Tokens       middleware.TokenValidator
	Logger       *slog.Logger
}

// NewRouter builds the full route tree. Rule set administration sits behind
// admin token auth; resolution and classification are open.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(deps.Logger))
	r.Use(middleware.Recovery(deps.Logger))

	r.Get("/healthz", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		deps.Checklist.Register(r)
		deps.Explanations.Register(r)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(deps.Tokens, deps.Logger))
		deps.RuleSets.Register(r)
	})

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
