package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omarshaarawi/hoopswrapped/internal/analytics"
	"github.com/omarshaarawi/hoopswrapped/internal/service"
)

type WrappedService interface {
	OpenSession(ctx context.Context, ownerID string) (*service.Session, error)
	CloseSession(id string) error
	Report(ctx context.Context, id string) (analytics.Report, error)
}

type Server struct {
	router   *mux.Router
	server   *http.Server
	wrapped  WrappedService
	gatherer prometheus.Gatherer
}

func New(addr string, wrapped WrappedService, gatherer prometheus.Gatherer) *Server {
	s := &Server{
		router:   mux.NewRouter(),
		wrapped:  wrapped,
		gatherer: gatherer,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestLoggingMiddleware)

	s.router.HandleFunc("/healthz", s.healthCheck).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	sessions := s.router.PathPrefix("/sessions").Subrouter()
	sessions.HandleFunc("", s.createSession).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/wrapped", s.getWrapped).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", s.deleteSession).Methods(http.MethodDelete)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		slog.Info("HTTP request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "duration", time.Since(start))
	})
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type createSessionRequest struct {
	OwnerID string `json:"owner_id"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	TeamID    int    `json:"team_id"`
	TeamName  string `json:"team_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	// An empty body means the configured owner.
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	session, err := s.wrapped.OpenSession(r.Context(), req.OwnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: session.ID,
		TeamID:    session.Team.ID,
		TeamName:  session.Team.Name,
	})
}

func (s *Server) getWrapped(w http.ResponseWriter, r *http.Request) {
	report, err := s.wrapped.Report(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.wrapped.CloseSession(mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, analytics.ErrTeamNotFound), errors.Is(err, service.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, analytics.ErrUpstream):
		status = http.StatusBadGateway
	}
	if status != http.StatusNotFound {
		slog.Error("Request failed", "status", status, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
