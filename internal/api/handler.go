package api

import (
	"encoding/json"
	"net/http"

	"github.com/kayratasci4/BorsaAI/config"
	"github.com/kayratasci4/BorsaAI/internal/app"
	"github.com/kayratasci4/BorsaAI/models"
	"github.com/kayratasci4/BorsaAI/services"
)

// Handler handles HTTP API requests
type Handler struct {
	app *app.App
	cfg *config.Config
}

// NewHandler creates a new Handler
func NewHandler(application *app.App, cfg *config.Config) *Handler {
	return &Handler{app: application, cfg: cfg}
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	Query string `json:"query"`
}

// HandleIndex returns basic service info at the root path
func (h *Handler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, map[string]string{
		"service": "borsaai",
		"status":  "ok",
	})
}

// HandleHealth returns the health status of the application
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	if !h.cfg.HasGemini() {
		status["gemini"] = "not_configured"
		status["status"] = "degraded"
	} else {
		status["gemini"] = "configured"
	}

	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus

	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

// HandleGetState returns the current view state
func (h *Handler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, h.app.Snapshot())
}

// HandleAnalyze runs a full fetch cycle for the requested asset and returns
// the settled view state. Empty queries do not trigger a fetch; the current
// state is returned unchanged.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, _ := h.app.Analyze(r.Context(), req.Query)
	h.jsonResponse(w, state)
}

// HandleGetSuggestions returns the curated quick-search suggestions
func (h *Handler) HandleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, models.Suggestions)
}

// HandleGetInstruments returns the known instrument catalog
func (h *Handler) HandleGetInstruments(w http.ResponseWriter, r *http.Request) {
	h.jsonResponse(w, models.Instruments)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
