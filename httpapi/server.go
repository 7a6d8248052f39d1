// Package httpapi exposes an Index over the HTTP surface of spec §6: five
// JSON endpoints plus a health check and a /batch_query endpoint, built the
// way sanonone-kektordb's
// internal/server package wires its manual mux + middleware chain.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	vectorvault "github.com/Sant0-9/VectorVault"
	"github.com/Sant0-9/VectorVault/workerpool"
)

// Server holds the HTTP interface around a vectorvault.Index.
type Server struct {
	index  *vectorvault.Index
	logger *vectorvault.Logger
	pool   *workerpool.Pool

	startedAt    time.Time
	requestCount atomic.Int64

	httpServer *http.Server
}

// NewServer builds a Server listening on addr around an already-constructed
// index. logger may be nil, in which case requests are logged to a no-op
// logger. A worker pool is started for the /batch_query endpoint; it is
// never used by /add, which stays on the caller's goroutine.
func NewServer(addr string, index *vectorvault.Index, logger *vectorvault.Logger) *Server {
	if logger == nil {
		logger = vectorvault.NoopLogger()
	}

	s := &Server{index: index, logger: logger, pool: workerpool.New(0, 64), startedAt: time.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.router)

	var handler http.Handler = mux
	handler = s.loggingMiddleware(handler)
	handler = s.recoveryMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe starts the HTTP server. It blocks until the server is shut
// down or fails to bind.
func (s *Server) ListenAndServe() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("httpapi: server startup failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully within the given context, then drains
// the batch-query worker pool.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	s.pool.Close()
	return err
}

// router is the manual path switch: one function, one mux entry.
func (s *Server) router(w http.ResponseWriter, r *http.Request) {
	s.requestCount.Add(1)
	switch r.URL.Path {
	case "/health":
		s.handleHealth(w, r)
	case "/add":
		s.handleAdd(w, r)
	case "/query":
		s.handleQuery(w, r)
	case "/save":
		s.handleSave(w, r)
	case "/load":
		s.handleLoad(w, r)
	case "/stats":
		s.handleStats(w, r)
	case "/batch_query":
		s.handleBatchQuery(w, r)
	default:
		s.writeError(w, http.StatusNotFound, "endpoint not found")
	}
}
