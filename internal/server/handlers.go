package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tunepool/tunepool/internal/models"
	"github.com/tunepool/tunepool/internal/picker"
	"github.com/tunepool/tunepool/internal/pool"
	"github.com/tunepool/tunepool/internal/shared"
)

const maxRandomCount = 50

// TracksHandler serves random selection, search and health endpoints over a [pool.Pool].
// Implements the [Handler] interface for registration with a [Router].
type TracksHandler struct {
	pool   *pool.Pool
	picker *picker.Picker
	logger *log.Logger
}

// NewTracksHandler creates a handler backed by the given pool and picker.
func NewTracksHandler(p *pool.Pool, pk *picker.Picker, logger *log.Logger) *TracksHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if pk == nil {
		pk = picker.New()
	}

	return &TracksHandler{pool: p, picker: pk, logger: logger}
}

// Routes returns the HTTP routes this handler serves.
func (h *TracksHandler) Routes() []string {
	return []string{"/random", "/search", "/health"}
}

// ServeHTTP dispatches to the endpoint matching the request path.
func (h *TracksHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch r.URL.Path {
	case "/random":
		h.handleRandom(w, r)
	case "/search":
		h.handleSearch(w, r)
	case "/health":
		h.handleHealth(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

// randomResponse is the payload for GET /random.
type randomResponse struct {
	Status         string         `json:"status"`
	Data           []models.Track `json:"data"`
	Count          int            `json:"count"`
	TotalAvailable int            `json:"total_available"`
	Timestamp      string         `json:"timestamp"`
}

// handleRandom serves GET /random?count=N.
//
// count defaults to 1 and is clamped to [1, 50]; the selection engine applies
// its own batch cap on top.
func (h *TracksHandler) handleRandom(w http.ResponseWriter, r *http.Request) {
	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid count: %q", raw))
			return
		}
		count = parsed
	}
	if count < 1 {
		count = 1
	}
	if count > maxRandomCount {
		count = maxRandomCount
	}

	tracks, err := h.pool.Tracks(r.Context())
	if err != nil {
		h.logger.Error("pool read failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	batch, err := h.picker.SelectMany(tracks, count)
	if errors.Is(err, shared.ErrEmptyPool) {
		writeError(w, http.StatusNotFound, "no songs available")
		return
	} else if err != nil {
		h.logger.Error("selection failed", "error", err)
		writeError(w, http.StatusInternalServerError, "selection failed")
		return
	}

	writeJSON(w, http.StatusOK, randomResponse{
		Status:         "success",
		Data:           batch,
		Count:          len(batch),
		TotalAvailable: len(tracks),
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
	})
}

// searchResponse is the payload for GET /search.
type searchResponse struct {
	Status string         `json:"status"`
	Data   []models.Track `json:"data"`
	Query  string         `json:"query"`
	Count  int            `json:"count"`
}

// handleSearch serves GET /search?q=<text>. Missing q is a 400.
func (h *TracksHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "missing query parameter 'q'")
		return
	}

	tracks, err := h.pool.Tracks(r.Context())
	if err != nil {
		h.logger.Error("pool read failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "catalog unavailable")
		return
	}

	matches := picker.Search(tracks, query)

	writeJSON(w, http.StatusOK, searchResponse{
		Status: "success",
		Data:   matches,
		Query:  query,
		Count:  len(matches),
	})
}

// healthResponse is the payload for GET /health.
type healthResponse struct {
	Status          string `json:"status"`
	PoolSize        int    `json:"pool_size"`
	Stale           bool   `json:"stale"`
	LastRefreshedAt string `json:"last_refreshed_at,omitempty"`
	TTLSeconds      int    `json:"ttl_seconds"`
	Timestamp       string `json:"timestamp"`
}

// handleHealth serves GET /health with liveness and cache freshness.
//
// Reads only the current snapshot, never triggers a refresh.
func (h *TracksHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:     "ok",
		PoolSize:   h.pool.Size(),
		Stale:      h.pool.Stale(),
		TTLSeconds: int(h.pool.TTL().Seconds()),
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}

	if at := h.pool.LastRefreshedAt(); !at.IsZero() {
		resp.LastRefreshedAt = at.UTC().Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

// errorResponse is the shared error payload.
type errorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Status: "error", Error: message})
}
