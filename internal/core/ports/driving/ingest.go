package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// IngestService loads books into the corpus without duplicates.
type IngestService interface {
	// IngestOne stores a single file under an explicit identity.
	// A read failure is returned as an error.
	IngestOne(ctx context.Context, path string, identity domain.BookIdentity) (domain.IngestOutcome, error)

	// IngestDirectory ingests every file of dir whose name encodes an identity.
	// Outcomes follow listing order. Per-file failures are outcomes, not errors.
	IngestDirectory(ctx context.Context, dir string) ([]domain.IngestOutcome, error)
}
