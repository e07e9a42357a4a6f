package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService loads book files into the corpus, skipping duplicates.
type IngestService struct {
	repo    *CorpusRepository
	reader  driven.SourceReader
	journal driven.IngestJournal
	workers int

	// locks serialises the exists-then-put pair per identity within this process.
	locks sync.Map

	now func() time.Time
}

// NewIngestService creates a new ingestion pipeline.
// The journal is optional (can be nil). workers below 1 means sequential.
func NewIngestService(
	repo *CorpusRepository,
	reader driven.SourceReader,
	journal driven.IngestJournal,
	workers int,
) *IngestService {
	if workers < 1 {
		workers = 1
	}
	return &IngestService{
		repo:    repo,
		reader:  reader,
		journal: journal,
		workers: workers,
		now:     time.Now,
	}
}

// IngestOne stores a single file under an explicit identity.
// Unlike directory mode, a failure is returned as an error.
func (s *IngestService) IngestOne(
	ctx context.Context, path string, identity domain.BookIdentity,
) (domain.IngestOutcome, error) {
	logger.Section("Ingest File")

	if err := identity.Validate(); err != nil {
		return domain.IngestOutcome{}, err
	}

	started := s.now()
	outcome := s.ingestEntry(ctx, driven.SourceEntry{Name: filepath.Base(path), Path: path}, identity)
	s.record(ctx, path, started, []domain.IngestOutcome{outcome})

	if outcome.Kind == domain.OutcomeFailed {
		return outcome, outcome.Err
	}
	return outcome, nil
}

// IngestDirectory ingests every file in dir whose name encodes a BookIdentity.
// Outcomes are returned in listing order regardless of completion order.
func (s *IngestService) IngestDirectory(ctx context.Context, dir string) ([]domain.IngestOutcome, error) {
	logger.Section("Ingest Directory")
	logger.Debug("Directory: %s, workers: %d", dir, s.workers)

	if s.reader == nil {
		return nil, errors.New("source reader not configured")
	}

	started := s.now()
	entries, err := s.reader.List(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	logger.Debug("Found %d entries", len(entries))

	outcomes := make([]domain.IngestOutcome, len(entries))

	var g errgroup.Group
	g.SetLimit(s.workers)

	for i, entry := range entries {
		identity, err := domain.ParseFilename(entry.Name)
		if err != nil {
			logger.Info("Skipping %s: %v", entry.Name, err)
			outcomes[i] = domain.IngestOutcome{
				Filename: entry.Name,
				Kind:     domain.OutcomeSkippedMalformed,
				Err:      err,
			}
			continue
		}

		g.Go(func() error {
			outcomes[i] = s.ingestEntry(ctx, entry, identity)
			return nil
		})
	}
	// Workers never return errors; failures live in outcomes.
	_ = g.Wait()

	tally := domain.Tally(outcomes)
	logger.Info("Ingest finished: stored=%d duplicate=%d malformed=%d failed=%d",
		tally.Stored, tally.Duplicate, tally.Malformed, tally.Failed)

	s.record(ctx, dir, started, outcomes)
	return outcomes, nil
}

// ingestEntry runs the duplicate check, the read and the write for one file.
func (s *IngestService) ingestEntry(
	ctx context.Context, entry driven.SourceEntry, identity domain.BookIdentity,
) domain.IngestOutcome {
	outcome := domain.IngestOutcome{Filename: entry.Name, Identity: identity}

	if err := ctx.Err(); err != nil {
		return failed(outcome, err)
	}

	unlock := s.lock(identity)
	defer unlock()

	exists, err := s.repo.Exists(ctx, identity)
	if err != nil {
		logger.Warn("Duplicate check failed for %s: %v", entry.Name, err)
		return failed(outcome, err)
	}
	if exists {
		logger.Info("Book already exists: %s", identity)
		outcome.Kind = domain.OutcomeSkippedDuplicate
		return outcome
	}

	if s.reader == nil {
		return failed(outcome, errors.New("source reader not configured"))
	}
	text, err := s.reader.Read(ctx, entry.Path)
	if err != nil {
		logger.Warn("Read failed for %s: %v", entry.Path, err)
		return failed(outcome, err)
	}

	docID, err := s.repo.Put(ctx, identity, text)
	if err != nil {
		logger.Warn("Store failed for %s: %v", entry.Name, err)
		return failed(outcome, err)
	}

	logger.Debug("Stored %s as %s", identity, docID)
	outcome.Kind = domain.OutcomeStored
	outcome.DocumentID = docID
	return outcome
}

func (s *IngestService) lock(identity domain.BookIdentity) func() {
	v, _ := s.locks.LoadOrStore(identity.Key(), &sync.Mutex{})
	m := v.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

// record writes the run to the journal. Journal errors are logged only.
func (s *IngestService) record(ctx context.Context, path string, started time.Time, outcomes []domain.IngestOutcome) {
	if s.journal == nil {
		return
	}
	run := domain.IngestRun{
		Path:       path,
		Index:      s.repo.Index(),
		StartedAt:  started,
		FinishedAt: s.now(),
		Outcomes:   outcomes,
	}
	id, err := s.journal.Record(context.WithoutCancel(ctx), run)
	if err != nil {
		logger.Warn("Failed to record ingest run: %v", err)
		return
	}
	logger.Debug("Recorded ingest run %s", id)
}

func failed(outcome domain.IngestOutcome, err error) domain.IngestOutcome {
	outcome.Kind = domain.OutcomeFailed
	outcome.Err = err
	return outcome
}
