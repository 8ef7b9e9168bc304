package receipt

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arvind0603/receipt-processor-challenge/internal/metrics"
)

// Server handles HTTP requests for receipt processing.
type Server struct {
	service *Service
	mux     *http.ServeMux
}

// NewServer creates a new Server with a default mux.
func NewServer(service *Service) *Server {
	return NewServerWithMux(service, http.NewServeMux())
}

// NewServerWithMux creates a new Server with a custom mux for testing.
func NewServerWithMux(service *Service, mux *http.ServeMux) *Server {
	s := &Server{
		service: service,
		mux:     mux,
	}
	s.registerRoutes()
	return s
}

// recovered wraps a handler so a panic becomes a generic 500 response
// instead of killing the process.
func (s *Server) recovered(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("Panic while handling request", "method", r.Method, "path", r.URL.Path, "panic", rec)
				errorResponse(w, fmt.Sprintf("An unexpected error occurred: %v", rec), http.StatusInternalServerError)
			}
		}()
		next(w, r)
	}
}

// registerRoutes registers all API routes on the server's mux.
func (s *Server) registerRoutes() {
	s.mux.Handle("POST /receipts/process",
		metrics.Instrument("/receipts/process", s.recovered(s.handleProcessReceipt)))
	s.mux.Handle("GET /receipts/{id}/points",
		metrics.Instrument("/receipts/{id}/points", s.recovered(s.handleGetPoints)))
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.Handle("GET /metrics", metrics.Handler())
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	slog.Info("Starting server", "address", addr)
	return http.ListenAndServe(addr, s.mux)
}

// ServeHTTP implements http.Handler for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
