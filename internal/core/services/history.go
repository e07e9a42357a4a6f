package services

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService reads ingest runs back from the journal.
type HistoryService struct {
	journal driven.IngestJournal
}

// NewHistoryService creates a new history service. journal may be nil.
func NewHistoryService(journal driven.IngestJournal) *HistoryService {
	return &HistoryService{journal: journal}
}

// Recent returns up to limit runs, most recent first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.IngestRun, error) {
	if s.journal == nil {
		return nil, domain.ErrJournalUnavailable
	}
	if limit <= 0 {
		limit = 10
	}
	return s.journal.Recent(ctx, limit)
}

// Get returns one run with its per-file outcomes.
func (s *HistoryService) Get(ctx context.Context, id string) (*domain.IngestRun, error) {
	if s.journal == nil {
		return nil, domain.ErrJournalUnavailable
	}
	return s.journal.Get(ctx, id)
}
