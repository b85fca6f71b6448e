// Package httpapi exposes sessions and the tool catalogue over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travel-agent/internal/application/port/input"
	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// MaxIterationsLimit bounds the per-request iteration ceiling.
	MaxIterationsLimit = 50

	maxBodyBytes = 64 << 10
)

type SessionRequest struct {
	Request       string `json:"request"`
	MaxIterations int    `json:"max_iterations"`
}

type SessionResponse struct {
	ID         string               `json:"id"`
	Status     entity.OutcomeStatus `json:"status"`
	Answer     string               `json:"answer,omitempty"`
	Reason     string               `json:"reason,omitempty"`
	Iterations int                  `json:"iterations"`
	Transcript []entity.Turn        `json:"transcript"`
}

type ParameterResponse struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

type ToolResponse struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Parameters  []ParameterResponse `json:"parameters"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	runner input.SessionRunner
	tools  output.ToolRegistry
	logger output.LoggerPort
}

func NewServer(runner input.SessionRunner, tools output.ToolRegistry, logger output.LoggerPort) *Server {
	return &Server{
		runner: runner,
		tools:  tools,
		logger: logger.Named("http"),
	}
}

// NewAccessLogger builds the zerolog request logger used by Router.
func NewAccessLogger(service string) zerolog.Logger {
	return httplog.NewLogger(service, httplog.Options{JSON: true})
}

func (s *Server) Router(accessLog zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(accessLog))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/tools", s.listTools)
		r.Post("/sessions", s.createSession)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listTools(w http.ResponseWriter, r *http.Request) {
	defs := s.tools.Definitions()
	resp := make([]ToolResponse, 0, len(defs))
	for _, def := range defs {
		params := make([]ParameterResponse, 0, len(def.Parameters))
		for _, p := range def.Parameters {
			params = append(params, ParameterResponse{
				Name:        p.Name,
				Type:        p.Type.String(),
				Description: p.Description,
				Required:    p.Required,
			})
		}
		resp = append(resp, ToolResponse{
			Name:        def.Name.String(),
			Description: def.Description,
			Parameters:  params,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSessionRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	id := uuid.NewString()
	httplog.LogEntrySetField(r.Context(), "session", id)

	start := time.Now()
	outcome := s.runner.Run(r.Context(), req.Request, req.MaxIterations)

	s.logger.Info("Session served",
		"session", id,
		"status", outcome.Status,
		"iterations", outcome.Iterations,
		"durationMs", time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, SessionResponse{
		ID:         id,
		Status:     outcome.Status,
		Answer:     outcome.Answer,
		Reason:     outcome.Reason,
		Iterations: outcome.Iterations,
		Transcript: outcome.Transcript,
	})
}

func decodeSessionRequest(r *http.Request) (SessionRequest, error) {
	var req SessionRequest

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return req, errors.New("request body is empty")
		}
		return req, fmt.Errorf("invalid JSON: %w", err)
	}

	if strings.TrimSpace(req.Request) == "" {
		return req, errors.New("request must not be empty")
	}
	if req.MaxIterations < 0 || req.MaxIterations > MaxIterationsLimit {
		return req, fmt.Errorf("max_iterations must be between 0 and %d", MaxIterationsLimit)
	}
	return req, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
