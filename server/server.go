// Package server exposes the runtime's operations over plain HTTP JSON. The
// wire format is a convenience surface, not a contract; the Go API in the
// root package is the real one.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/cymond/educhat"
)

type (
	Server struct {
		runtime *educhat.Runtime
		logger  *slog.Logger

		httpServer *http.Server
	}
)

func NewServer(runtime *educhat.Runtime, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		runtime: runtime,
		logger:  logger,
	}
}

// Handler builds the routed handler wrapped in CORS, panic recovery and
// request logging.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	s.registerRoutes(router)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(
		handlers.PrintRecoveryStack(true),
		handlers.RecoveryLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError)),
	)

	return cors(recovery(s.logRequests(router)))
}

// ListenAndServe blocks until the context is cancelled, then shuts the server
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()
	s.logger.Info("http server listening", slog.String("addr", addr))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.logger.WithGroup("http").Info("[HTTP] call",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("statusCode", recorder.status),
			slog.Duration("duration", time.Since(startTime)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
