// Package server exposes the code hook over HTTP for local runs and container
// deployments, next to the health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"robo-advisor/internal/codehook"
	apperrors "robo-advisor/internal/common/errors"
	"robo-advisor/internal/common/logger"
	"robo-advisor/internal/lex"
)

const maxEventBytes = 1 << 20

// Invoker runs one code hook event.
type Invoker interface {
	Invoke(ctx context.Context, payload json.RawMessage) (*lex.Response, error)
}

type Server struct {
	invoker    Invoker
	gatherer   prometheus.Gatherer
	logger     logger.Logger
	httpServer *http.Server
}

// New builds the server. A nil gatherer leaves /metrics unregistered.
func New(addr string, invoker Invoker, gatherer prometheus.Gatherer, log logger.Logger) *Server {
	s := &Server{
		invoker:  invoker,
		gatherer: gatherer,
		logger:   log,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /codehook", s.handleCodeHook)
	mux.HandleFunc("GET /health", s.handleStatus("healthy"))
	mux.HandleFunc("GET /ready", s.handleStatus("ready"))
	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleCodeHook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	if err != nil {
		writeError(w, apperrors.NewInvalidRequestError("request body could not be read", err))
		return
	}

	ctx := r.Context()
	if id := r.Header.Get("X-Request-Id"); id != "" {
		ctx = codehook.ContextWithRequestID(ctx, id)
	}

	resp, err := s.invoker.Invoke(ctx, body)
	if err != nil {
		writeError(w, apperrors.Normalize(err))
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

func writeError(w http.ResponseWriter, stdErr *apperrors.StandardError) {
	writeJSON(w, apperrors.HTTPStatus(stdErr.Code), map[string]interface{}{"error": stdErr})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
