// Package memory provides in-memory implementations of driven ports for
// testing and for running with the on-disk journal disabled.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Journal implements the interface.
var _ driven.IngestJournal = (*Journal)(nil)

// Journal is an in-memory implementation of driven.IngestJournal.
type Journal struct {
	mu   sync.RWMutex
	runs []domain.IngestRun
}

// NewJournal creates a new in-memory journal.
func NewJournal() *Journal {
	return &Journal{}
}

// Record stores a copy of run and returns its ID.
func (j *Journal) Record(_ context.Context, run domain.IngestRun) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.Outcomes = append([]domain.IngestOutcome(nil), run.Outcomes...)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs = append(j.runs, run)
	return run.ID, nil
}

// Recent returns up to limit runs in reverse recording order.
func (j *Journal) Recent(_ context.Context, limit int) ([]domain.IngestRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	result := make([]domain.IngestRun, 0, min(limit, len(j.runs)))
	for i := len(j.runs) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, j.runs[i])
	}
	return result, nil
}

// Get returns a run by ID.
func (j *Journal) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for i := range j.runs {
		if j.runs[i].ID == id {
			run := j.runs[i]
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}
