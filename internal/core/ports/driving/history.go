package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// HistoryService exposes the ingest journal.
type HistoryService interface {
	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Get returns one run with its per-file outcomes.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)
}
