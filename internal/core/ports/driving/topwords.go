package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// TopWordsService ranks words across a year cohort.
type TopWordsService interface {
	// TopWords returns at most k terms ordered by count descending, then term ascending.
	// A year without books yields an empty slice. On partial failure the ranking over
	// the successful documents is returned with a *domain.PartialAggregationError.
	TopWords(ctx context.Context, year, k int) ([]domain.TermCount, error)
}
