package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
)

// errorResponse writes the error envelope used by every failure path.
func errorResponse(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"ErrorMessage": message}); err != nil {
		slog.Error("Error encoding error response", "error", err)
	}
}

// handleProcessReceipt accepts a receipt submission, scores it, and returns
// the generated identifier.
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		errorResponse(w, "Invalid content type. Expected 'application/json'.", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("Error reading request body", "error", err)
		errorResponse(w, fmt.Sprintf("An unexpected error occurred: %v", err), http.StatusInternalServerError)
		return
	}

	id, err := s.service.Process(body)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			errorResponse(w, verr.Message, http.StatusBadRequest)
			return
		}
		slog.Error("Error processing receipt", "error", err)
		errorResponse(w, fmt.Sprintf("An unexpected error occurred: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"id": id}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleGetPoints returns the stored points for a receipt id.
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	points, err := s.service.GetPoints(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			errorResponse(w, "Receipt not found", http.StatusNotFound)
			return
		}
		slog.Error("Error looking up receipt", "id", id, "error", err)
		errorResponse(w, fmt.Sprintf("An unexpected error occurred: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]int{"points": points}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}
