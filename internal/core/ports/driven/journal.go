package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// IngestJournal records ingest runs.
type IngestJournal interface {
	// Record persists a finished run with its outcomes and returns its ID.
	// An empty run.ID is assigned by the journal.
	Record(ctx context.Context, run domain.IngestRun) (string, error)

	// Recent returns up to limit runs, most recent first.
	Recent(ctx context.Context, limit int) ([]domain.IngestRun, error)

	// Get returns a single run with its outcomes.
	Get(ctx context.Context, id string) (*domain.IngestRun, error)
}
