package receipt

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/arvind0603/receipt-processor-challenge/internal/metrics"
)

// IDGenerator generates unique identifiers for receipts.
type IDGenerator interface {
	Generate() string
}

// defaultIDGenerator generates UUID v4 strings.
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	return uuid.NewString()
}

// Service handles receipt submission and points retrieval.
type Service struct {
	store Store
	ids   IDGenerator
}

// NewService creates a Service with the default UUID generator.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		ids:   &defaultIDGenerator{},
	}
}

// NewServiceWithDeps creates a Service with a custom ID generator for testing.
func NewServiceWithDeps(store Store, ids IDGenerator) *Service {
	return &Service{
		store: store,
		ids:   ids,
	}
}

// Process validates a raw submission, scores it, and stores the result under
// a freshly generated identifier. A *ValidationError is returned verbatim so
// the HTTP layer can map it to a response; any other error is internal.
func (s *Service) Process(body []byte) (string, error) {
	rec, err := ParseSubmission(body)
	if err != nil {
		if verr, ok := err.(*ValidationError); ok {
			metrics.ObserveValidationFailure(verr.Kind.String())
		}
		return "", err
	}
	rec.ID = s.ids.Generate()

	points := Points(rec)
	if err := s.store.Insert(rec.ID, points); err != nil {
		return "", fmt.Errorf("storing receipt points: %w", err)
	}

	metrics.ObserveReceiptProcessed(points)
	slog.Info("Receipt processed",
		"id", rec.ID,
		"retailer", rec.Retailer,
		"items", len(rec.Items),
		"points", points,
	)
	return rec.ID, nil
}

// GetPoints retrieves the stored points for an id. Returns ErrNotFound when
// no receipt exists with that id.
func (s *Service) GetPoints(id string) (int, error) {
	points, err := s.store.Lookup(id)
	if err != nil {
		return 0, fmt.Errorf("looking up receipt %s: %w", id, err)
	}
	return points, nil
}
