// Package ioweb serves the read-only HTTP API over the migrated
// database. It exists for quick verification of migration results, not
// as a production surface.
package ioweb

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/teams-transport/whdb/pkg/db"
)

// Server is the read-only API server.
type Server struct {
	operator db.Operator
	port     int
}

// New creates a new Server on the given port.
func New(op db.Operator, port int) *Server {
	return &Server{operator: op, port: port}
}

// Run starts the HTTP server and blocks until ctx is canceled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.operator.Pool() == nil {
		return NotConnectedError()
	}

	r := mux.NewRouter()
	r.Use(corsMiddleware)
	r.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/customers", s.handleCustomers).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("API server listening", "port", s.port)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return ServerError(s.port, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return ServerError(s.port, err)
	}
	slog.Info("API server stopped")
	return nil
}

// corsMiddleware allows browser clients from any origin. The API is
// read-only and meant for local verification tools.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Cannot encode API response", "error", err)
	}
}
