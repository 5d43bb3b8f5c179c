// Package server implements the playback proxy.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mralexsaavedra/jellytube/internal/contracts"
	"github.com/mralexsaavedra/jellytube/internal/logging"
)

// NewRouter returns the proxy's http Handler.
func NewRouter(resolver contracts.StreamResolver, store contracts.StreamStore, streamTTL time.Duration) http.Handler {
	h := &handlers{
		resolver:  resolver,
		store:     store,
		streamTTL: streamTTL,
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/stream/{videoID}", h.handleStream)
	r.Get("/health", h.handleHealth)

	return r
}

// StartServer runs the proxy on the given port until ctx is cancelled.
func StartServer(ctx context.Context, port string, resolver contracts.StreamResolver, store contracts.StreamStore, streamTTL time.Duration) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(resolver, store, streamTTL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logging.E("Proxy shutdown error: %v", err)
		}
	}()

	logging.I("JellyTube proxy listening on :%s", port)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
