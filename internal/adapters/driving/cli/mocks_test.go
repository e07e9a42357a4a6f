package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// --- Mock implementations ---

type mockIndexService struct {
	pingErr   error
	created   bool
	createErr error
	pings     int
}

func (m *mockIndexService) Ping(_ context.Context) error {
	m.pings++
	return m.pingErr
}

func (m *mockIndexService) Create(_ context.Context) (bool, error) {
	return m.created, m.createErr
}

type mockIngestService struct {
	outcome   domain.IngestOutcome
	outcomes  []domain.IngestOutcome
	err       error
	gotPath   string
	gotIdent  domain.BookIdentity
	gotDirArg string
}

func (m *mockIngestService) IngestOne(
	_ context.Context, path string, identity domain.BookIdentity,
) (domain.IngestOutcome, error) {
	m.gotPath = path
	m.gotIdent = identity
	return m.outcome, m.err
}

func (m *mockIngestService) IngestDirectory(_ context.Context, dir string) ([]domain.IngestOutcome, error) {
	m.gotDirArg = dir
	return m.outcomes, m.err
}

type mockCatalogService struct {
	books    []domain.Book
	avg      int
	avgFound bool
	err      error

	gotAuthor string
	gotWord   string
	gotFrom   int
	gotTo     int
}

func (m *mockCatalogService) BooksWithWord(_ context.Context, word string) ([]domain.Book, error) {
	m.gotWord = word
	return m.books, m.err
}

func (m *mockCatalogService) BooksByAuthorWithWord(_ context.Context, author, word string) ([]domain.Book, error) {
	m.gotAuthor, m.gotWord = author, word
	return m.books, m.err
}

func (m *mockCatalogService) BooksInRangeWithoutWord(
	_ context.Context, from, to int, word string,
) ([]domain.Book, error) {
	m.gotFrom, m.gotTo, m.gotWord = from, to, word
	return m.books, m.err
}

func (m *mockCatalogService) AverageYear(_ context.Context, author string) (int, bool, error) {
	m.gotAuthor = author
	return m.avg, m.avgFound, m.err
}

type mockTopWordsService struct {
	counts  []domain.TermCount
	err     error
	gotYear int
	gotK    int
}

func (m *mockTopWordsService) TopWords(_ context.Context, year, k int) ([]domain.TermCount, error) {
	m.gotYear, m.gotK = year, k
	return m.counts, m.err
}

type mockHistoryService struct {
	runs []domain.IngestRun
	err  error
}

func (m *mockHistoryService) Recent(_ context.Context, limit int) ([]domain.IngestRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit < len(m.runs) {
		return m.runs[:limit], nil
	}
	return m.runs, nil
}

func (m *mockHistoryService) Get(_ context.Context, id string) (*domain.IngestRun, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.runs {
		if m.runs[i].ID == id {
			return &m.runs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// --- Helpers ---

type testServices struct {
	index    *mockIndexService
	ingest   *mockIngestService
	catalog  *mockCatalogService
	topWords *mockTopWordsService
	history  *mockHistoryService
}

// setupTestServices installs mock services and resets flags. The returned
// cleanup restores the previous state.
func setupTestServices() (*testServices, func()) {
	oldBootstrap := bootstrap
	oldSettings := settings
	oldIndex, oldIngest, oldCatalog := indexService, ingestService, catalogService
	oldTopWords, oldHistory := topWordsService, historyService

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ts := &testServices{
		index:    &mockIndexService{created: true},
		ingest:   &mockIngestService{},
		catalog:  &mockCatalogService{},
		topWords: &mockTopWordsService{},
		history: &mockHistoryService{runs: []domain.IngestRun{{
			ID:         "run-1",
			Path:       "/books",
			Index:      "books",
			StartedAt:  started,
			FinishedAt: started.Add(1500 * time.Millisecond),
			Outcomes: []domain.IngestOutcome{
				{Filename: "A - B - 1900.txt", Kind: domain.OutcomeStored},
				{Filename: "junk", Kind: domain.OutcomeSkippedMalformed},
			},
		}}},
	}

	bootstrap = nil
	settings = domain.DefaultSettings()
	indexService = ts.index
	ingestService = ts.ingest
	catalogService = ts.catalog
	topWordsService = ts.topWords
	historyService = ts.history
	resetFlags()

	return ts, func() {
		bootstrap = oldBootstrap
		settings = oldSettings
		indexService, ingestService, catalogService = oldIndex, oldIngest, oldCatalog
		topWordsService, historyService = oldTopWords, oldHistory
		resetFlags()
	}
}

func resetFlags() {
	flagConfig, flagHost, flagIndex = "", "", ""
	flagPort = 0
	flagVerbose = false
	flagAuthor, flagYear, flagName, flagFrom, flagUntil = "", "", "", "", ""
	topWordsLimit = 0
	historyLimit = 10
}

// run executes the root command with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}
