package httpserver

import (
	"net/http"
	"time"
)

// New builds the process HTTP server. Request and response bodies here are
// bounded JSON documents (profiles in, checklists out), so the read and write
// timeouts stay tight.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
