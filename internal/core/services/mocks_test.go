package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/adapters/driven/search/memory"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// --- Mock implementations ---

// faultyEngine wraps the in-memory engine with injectable failures.
type faultyEngine struct {
	*memory.Engine

	pingErr     error
	existsErr   error
	createErr   error
	searchErr   error
	indexErr    error
	termErrs    map[string]error
	stallSearch bool
	stallTerms  map[string]bool
	searchCalls atomic.Int32
	termCalls   atomic.Int32
}

func newFaultyEngine() *faultyEngine {
	return &faultyEngine{
		Engine:     memory.NewEngine(),
		termErrs:   make(map[string]error),
		stallTerms: make(map[string]bool),
	}
}

// stall blocks like an unresponsive engine until the caller gives up.
func stall(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func (f *faultyEngine) Ping(ctx context.Context) error {
	if f.pingErr != nil {
		return f.pingErr
	}
	return f.Engine.Ping(ctx)
}

func (f *faultyEngine) IndexExists(ctx context.Context, index string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.Engine.IndexExists(ctx, index)
}

func (f *faultyEngine) CreateIndex(ctx context.Context, index string, schema domain.IndexSchema) error {
	if f.createErr != nil {
		return f.createErr
	}
	return f.Engine.CreateIndex(ctx, index, schema)
}

func (f *faultyEngine) IndexDocument(ctx context.Context, index string, fields map[string]string) (string, error) {
	if f.indexErr != nil {
		return "", f.indexErr
	}
	return f.Engine.IndexDocument(ctx, index, fields)
}

func (f *faultyEngine) Search(ctx context.Context, index string, q domain.Query, size int) ([]domain.Hit, error) {
	f.searchCalls.Add(1)
	if f.stallSearch {
		return nil, stall(ctx)
	}
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.Engine.Search(ctx, index, q, size)
}

func (f *faultyEngine) TermVectors(ctx context.Context, index, id, field string) (domain.TermVector, error) {
	f.termCalls.Add(1)
	if f.stallTerms[id] {
		return nil, stall(ctx)
	}
	if err, ok := f.termErrs[id]; ok {
		return nil, err
	}
	return f.Engine.TermVectors(ctx, index, id, field)
}

// mockReader implements driven.SourceReader over an in-memory directory.
type mockReader struct {
	names   []string
	content map[string]string
	readErr map[string]error
	listErr error
	delay   time.Duration
}

func newMockReader() *mockReader {
	return &mockReader{content: make(map[string]string), readErr: make(map[string]error)}
}

func (m *mockReader) add(name, text string) {
	m.names = append(m.names, name)
	m.content[name] = text
}

func (m *mockReader) List(_ context.Context, dir string) ([]driven.SourceEntry, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	entries := make([]driven.SourceEntry, len(m.names))
	for i, n := range m.names {
		entries[i] = driven.SourceEntry{Name: n, Path: filepath.Join(dir, n)}
	}
	return entries, nil
}

func (m *mockReader) Read(_ context.Context, path string) (string, error) {
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	name := filepath.Base(path)
	if err, ok := m.readErr[name]; ok {
		return "", err
	}
	text, ok := m.content[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrIO, path)
	}
	return text, nil
}

// mockJournal implements driven.IngestJournal.
type mockJournal struct {
	mu        sync.Mutex
	runs      []domain.IngestRun
	recordErr error
}

func (m *mockJournal) Record(_ context.Context, run domain.IngestRun) (string, error) {
	if m.recordErr != nil {
		return "", m.recordErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	run.ID = fmt.Sprintf("run-%d", len(m.runs)+1)
	m.runs = append(m.runs, run)
	return run.ID, nil
}

func (m *mockJournal) Recent(_ context.Context, limit int) ([]domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.IngestRun
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}

func (m *mockJournal) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.runs {
		if m.runs[i].ID == id {
			run := m.runs[i]
			return &run, nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Helpers ---

const testIndex = "books"

func testSchema() domain.IndexSchema {
	return domain.DefaultSettings().Analysis.Schema()
}

// newTestCorpus returns an engine with the test index created and a repository over it.
func newTestCorpus(t *testing.T) (*faultyEngine, *CorpusRepository) {
	t.Helper()
	engine := newFaultyEngine()
	require.NoError(t, engine.CreateIndex(context.Background(), testIndex, testSchema()))
	return engine, NewCorpusRepository(engine, testIndex, time.Second, 100)
}

func storeBook(t *testing.T, repo *CorpusRepository, title, author string, year int, text string) string {
	t.Helper()
	id, err := repo.Put(context.Background(), domain.BookIdentity{Title: title, Author: author, Year: year}, text)
	require.NoError(t, err)
	return id
}
