package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure TopWordsService implements the interface.
var _ driving.TopWordsService = (*TopWordsService)(nil)

// TopWordsService merges per-document term vectors of a year cohort into one ranking.
type TopWordsService struct {
	repo     *CorpusRepository
	engine   driven.SearchEngine
	timeout  time.Duration
	fetchers int
}

// NewTopWordsService creates a new aggregator. fetchers bounds concurrent
// term-vector requests; below 1 means sequential.
func NewTopWordsService(
	repo *CorpusRepository, engine driven.SearchEngine, timeout time.Duration, fetchers int,
) *TopWordsService {
	if fetchers < 1 {
		fetchers = 1
	}
	return &TopWordsService{
		repo:     repo,
		engine:   engine,
		timeout:  timeout,
		fetchers: fetchers,
	}
}

// TopWords ranks terms across all books published in year.
func (s *TopWordsService) TopWords(ctx context.Context, year, k int) ([]domain.TermCount, error) {
	logger.Section("Top Words")

	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if s.engine == nil {
		return nil, domain.ErrEngineUnavailable
	}

	hits, err := s.repo.Find(ctx, YearQuery(year))
	if err != nil {
		return nil, fmt.Errorf("resolve cohort %d: %w", year, err)
	}
	logger.Debug("Cohort %d: %d documents", year, len(hits))
	if len(hits) == 0 {
		return []domain.TermCount{}, nil
	}

	vectors := make([]domain.TermVector, len(hits))
	errs := make([]error, len(hits))

	var g errgroup.Group
	g.SetLimit(s.fetchers)
	for i := range hits {
		g.Go(func() error {
			vectors[i], errs[i] = s.fetch(ctx, hits[i].ID)
			return nil
		})
	}
	_ = g.Wait()

	// Merge only after every fetch has finished; this goroutine owns totals.
	totals := make(map[string]int)
	failed := make(map[string]error)
	for i := range hits {
		if errs[i] != nil {
			logger.Warn("Term vector for %s failed: %v", hits[i].ID, errs[i])
			failed[hits[i].ID] = errs[i]
			continue
		}
		for term, freq := range vectors[i] {
			totals[term] += freq
		}
	}
	logger.Debug("Distinct terms: %d", len(totals))

	ranked := Rank(totals, k)
	if len(failed) > 0 {
		return ranked, &domain.PartialAggregationError{Year: year, Failed: failed}
	}
	return ranked, nil
}

func (s *TopWordsService) fetch(ctx context.Context, id string) (domain.TermVector, error) {
	ctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	vec, err := s.engine.TermVectors(ctx, s.repo.Index(), id, domain.FieldText)
	if err != nil {
		return nil, queryError("termvectors", id, err)
	}
	return vec, nil
}

// Rank orders totals by count descending, breaking ties by ascending term,
// and keeps the first k entries.
func Rank(totals map[string]int, k int) []domain.TermCount {
	ranked := make([]domain.TermCount, 0, len(totals))
	for term, count := range totals {
		ranked = append(ranked, domain.TermCount{Term: term, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Term < ranked[j].Term
	})
	if k >= 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
