// Package api provides the JSON handlers for the handbreaker score history.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/handbreaker/internal/store"
)

// DefaultListLimit caps GET /api/scores when no limit is given.
const DefaultListLimit = 50

// ScoreHandler handles HTTP requests for finished runs.
type ScoreHandler struct {
	store *store.Store
}

// NewScoreHandler creates a new ScoreHandler with the given store.
func NewScoreHandler(s *store.Store) *ScoreHandler {
	return &ScoreHandler{store: s}
}

// ServeHTTP routes /api/scores, /api/scores/best and /api/scores/{id}.
func (h *ScoreHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/scores")
	path = strings.TrimPrefix(path, "/")

	switch path {
	case "":
		h.list(w, r)
	case "best":
		h.best(w, r)
	default:
		h.get(w, r, path)
	}
}

type runResponse struct {
	ID         string `json:"id"`
	Level      int    `json:"level"`
	Score      int    `json:"score"`
	Lives      int    `json:"lives"`
	Outcome    string `json:"outcome"`
	Completed  []int  `json:"completed"`
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
}

type listRunsResponse struct {
	Runs []runResponse `json:"runs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toResponse(run *store.Run) runResponse {
	completed := run.Completed
	if completed == nil {
		completed = []int{}
	}
	return runResponse{
		ID:         run.ID,
		Level:      run.Level,
		Score:      run.Score,
		Lives:      run.Lives,
		Outcome:    string(run.Outcome),
		Completed:  completed,
		StartedAt:  run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
		FinishedAt: run.FinishedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toListResponse(runs []*store.Run) listRunsResponse {
	response := listRunsResponse{
		Runs: make([]runResponse, 0, len(runs)),
	}
	for _, run := range runs {
		response.Runs = append(response.Runs, toResponse(run))
	}
	return response
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/scores?limit=N, newest first.
func (h *ScoreHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	runs, err := h.store.Runs().List(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(runs))
}

// best handles GET /api/scores/best: the top run of each level.
func (h *ScoreHandler) best(w http.ResponseWriter, r *http.Request) {
	runs, err := h.store.Runs().BestByLevel()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get best runs")
		return
	}
	writeJSON(w, http.StatusOK, toListResponse(runs))
}

// get handles GET /api/scores/{id}.
func (h *ScoreHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	run, err := h.store.Runs().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Run not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get run")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(run))
}
