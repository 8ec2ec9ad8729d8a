package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/NoNoBzH22/CineVault-Lite/internal/tasks"
	"github.com/charmbracelet/log"
)

// BridgeHandler exposes the sync pipeline over HTTP.
//
// Responses mirror the CLI's outcomes: a sync reports the matched/total
// summary on success and a distinguishable error reason on failure.
type BridgeHandler struct {
	engine tasks.SyncEngine
	logger *log.Logger
}

// NewBridgeHandler creates a handler over the given sync engine. The logger
// may be nil.
func NewBridgeHandler(engine tasks.SyncEngine, logger *log.Logger) *BridgeHandler {
	return &BridgeHandler{engine: engine, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *BridgeHandler) Routes() []string {
	return []string{
		"POST /sync-playlist",
		"GET /plex-users",
		"GET /health",
	}
}

type syncRequest struct {
	URL    string `json:"url"`
	Name   string `json:"name"`
	UserID string `json:"userId"`
}

// ServeHTTP dispatches bridge requests by path.
func (h *BridgeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/sync-playlist":
		h.syncPlaylist(w, r)
	case "/plex-users":
		h.listUsers(w, r)
	case "/health":
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		http.NotFound(w, r)
	}
}

func (h *BridgeHandler) syncPlaylist(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body."})
		return
	}
	if req.URL == "" || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Incomplete data."})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = "main"
	}

	if h.logger != nil {
		h.logger.Info("sync requested", "name", req.Name, "user", userID)
	}

	result, err := h.engine.Run(r.Context(), nil, tasks.SyncOptions{
		URL:          req.URL,
		PlaylistName: req.Name,
		UserID:       userID,
	})
	if err != nil {
		if h.logger != nil {
			h.logger.Error("sync failed", "name", req.Name, "err", err)
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": result.Summary,
		"matched": result.MatchedCount,
		"total":   result.TotalTracks,
		"missing": result.Missing,
	})
}

func (h *BridgeHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.engine.Users(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Error reading users"})
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// PasswordAuth requires the X-API-Password header to match the configured
// password. Hashes are compared in constant time. The health endpoint stays
// open for container probes.
func PasswordAuth(password string) Middleware {
	expected := sha256.Sum256([]byte(password))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			supplied := sha256.Sum256([]byte(r.Header.Get("X-API-Password")))
			if subtle.ConstantTimeCompare(expected[:], supplied[:]) != 1 {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid API Password."})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs each request with its duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if logger == nil {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
		})
	}
}
