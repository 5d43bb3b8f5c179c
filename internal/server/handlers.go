package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mralexsaavedra/jellytube/internal/contracts"
	"github.com/mralexsaavedra/jellytube/internal/logging"
)

type handlers struct {
	resolver  contracts.StreamResolver
	store     contracts.StreamStore // nil disables caching
	streamTTL time.Duration
}

// handleStream resolves a video ID to a playable stream URL and redirects.
// Redirecting instead of relaying keeps the proxy zero-storage and lets the
// media server issue its own range requests.
func (h *handlers) handleStream(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	if videoID == "" {
		http.Error(w, "missing video ID", http.StatusBadRequest)
		return
	}

	logging.I("Resolving stream for video %q", videoID)

	if streamURL, ok := h.cachedStreamURL(videoID); ok {
		logging.D("Stream cache hit for video %q", videoID)
		http.Redirect(w, r, streamURL, http.StatusFound)
		return
	}

	streamURL, err := h.resolver.ResolveStreamURL(r.Context(), videoID)
	if err != nil {
		logging.E("Error resolving video %q: %v", videoID, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to resolve video stream")
		return
	}

	h.cacheStreamURL(videoID, streamURL)

	logging.D("Redirecting video %q to resolved stream", videoID)
	http.Redirect(w, r, streamURL, http.StatusFound)
}

// handleHealth reports service liveness.
func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "jellytube-proxy",
	}); err != nil {
		logging.E("Failed to encode health response: %v", err)
	}
}

func (h *handlers) cachedStreamURL(videoID string) (string, bool) {
	if h.store == nil {
		return "", false
	}
	streamURL, found, err := h.store.GetStreamURL(videoID)
	if err != nil {
		logging.E("Stream cache lookup failed for video %q: %v", videoID, err)
		return "", false
	}
	return streamURL, found
}

func (h *handlers) cacheStreamURL(videoID, streamURL string) {
	if h.store == nil {
		return
	}
	if err := h.store.PruneExpired(); err != nil {
		logging.E("Stream cache prune failed: %v", err)
	}
	if err := h.store.SaveStreamURL(videoID, streamURL, time.Now().Add(h.streamTTL)); err != nil {
		logging.E("Stream cache save failed for video %q: %v", videoID, err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		logging.E("Failed to encode error response: %v", err)
	}
}
