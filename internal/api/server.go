package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/arjunks/enercast/internal/inference"
	"github.com/arjunks/enercast/internal/pipeline"
	"github.com/arjunks/enercast/internal/simulate"
	"github.com/arjunks/enercast/internal/weather"
)

// Server exposes the prediction pipeline over HTTP.
type Server struct {
	runner *pipeline.Runner
}

// NewServer creates a server around a configured pipeline runner.
func NewServer(runner *pipeline.Runner) *Server {
	return &Server{runner: runner}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.AllowAll().Handler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/appliances", s.handleAppliances)
		r.Post("/predict", s.handlePredict)
	})

	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": "1.0.0",
	})
}

// handleAppliances lists the appliance types the model knows about.
func (s *Server) handleAppliances(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"appliances": simulate.ApplianceColumns,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.runner.Run(r.Context(), req.toPipeline())
	if err != nil {
		respondError(w, statusFor(err), err.Error())
		return
	}

	respondJSON(w, http.StatusOK, newPredictResponse(result))
}

// statusFor maps pipeline failures onto HTTP statuses: client input
// problems are 400s, upstream weather failures 502, everything else 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidRequest),
		errors.Is(err, weather.ErrInvalidLocationFormat):
		return http.StatusBadRequest
	case errors.Is(err, weather.ErrUnexpectedResponse):
		return http.StatusBadGateway
	case errors.Is(err, inference.ErrFeatureColumnMismatch),
		errors.Is(err, pipeline.ErrPrediction):
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
