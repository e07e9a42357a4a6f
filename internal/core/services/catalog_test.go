package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func titles(books []domain.Book) []string {
	out := make([]string, len(books))
	for i := range books {
		out[i] = books[i].Identity.Title
	}
	return out
}

func seedCatalog(t *testing.T) (*faultyEngine, *CatalogService) {
	t.Helper()
	engine, repo := newTestCorpus(t)
	storeBook(t, repo, "War and Peace", "Leo Tolstoy", 1869, "War came to Moscow")
	storeBook(t, repo, "Resurrection", "Leo Tolstoy", 1899, "prison")
	storeBook(t, repo, "Dead Souls", "Nikolai Gogol", 1842, "no war here? war")
	storeBook(t, repo, "Evenings", "Nikolai Gogol", 1831, "village tales")
	storeBook(t, repo, "Mirgorod", "Nikolai Gogol", 1835, "cossacks")
	storeBook(t, repo, "Arabesques", "Nikolai Gogol", 1840, "essays")
	storeBook(t, repo, "Taras Bulba", "Nikolai Gogol", 1842, "war and cossacks")
	return engine, NewCatalogService(repo)
}

func TestCatalog_BooksWithWord(t *testing.T) {
	_, svc := seedCatalog(t)

	books, err := svc.BooksWithWord(context.Background(), "war")
	require.NoError(t, err)
	assert.Equal(t, []string{"War and Peace", "Dead Souls", "Taras Bulba"}, titles(books))

	books, err = svc.BooksWithWord(context.Background(), "zeppelin")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestCatalog_BooksByAuthorWithWord(t *testing.T) {
	_, svc := seedCatalog(t)

	books, err := svc.BooksByAuthorWithWord(context.Background(), "Gogol", "cossacks")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mirgorod", "Taras Bulba"}, titles(books))
}

func TestCatalog_BooksInRangeWithoutWord(t *testing.T) {
	_, svc := seedCatalog(t)

	books, err := svc.BooksInRangeWithoutWord(context.Background(), 1830, 1842, "war")
	require.NoError(t, err)
	assert.Equal(t, []string{"Evenings", "Mirgorod", "Arabesques"}, titles(books))

	books, err = svc.BooksInRangeWithoutWord(context.Background(), 1835, 1835, "war")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mirgorod"}, titles(books), "bounds are inclusive")
}

func TestCatalog_InvalidInput(t *testing.T) {
	_, svc := seedCatalog(t)
	ctx := context.Background()

	_, err := svc.BooksWithWord(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.BooksByAuthorWithWord(ctx, "", "war")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.BooksInRangeWithoutWord(ctx, 1900, 1800, "war")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = svc.AverageYear(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalog_AverageYear(t *testing.T) {
	engine, repo := newTestCorpus(t)
	storeBook(t, repo, "First", "Ivan Turgenev", 1869, "a")
	storeBook(t, repo, "Second", "Ivan Turgenev", 1870, "b")
	svc := NewCatalogService(repo)
	ctx := context.Background()

	avg, ok, err := svc.AverageYear(ctx, "Turgenev")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1870, avg, "1869.5 rounds half up")

	_, ok, err = svc.AverageYear(ctx, "Pushkin")
	require.NoError(t, err)
	assert.False(t, ok)

	engine.searchErr = errors.New("down")
	_, _, err = svc.AverageYear(ctx, "Turgenev")
	assert.ErrorIs(t, err, domain.ErrQueryExecution)
}

func TestMeanYear(t *testing.T) {
	tests := []struct {
		name  string
		years []int
		want  int
	}{
		{"empty", nil, 0},
		{"single", []int{1842}, 1842},
		{"half rounds up", []int{1869, 1870}, 1870},
		{"third rounds down", []int{1800, 1801, 1803}, 1801},
		{"two thirds rounds up", []int{1800, 1802, 1803}, 1802},
		{"exact", []int{1830, 1840}, 1835},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeanYear(tt.years))
		})
	}
}

func TestCatalog_SkipsUnreadableHits(t *testing.T) {
	engine, repo := newTestCorpus(t)
	_, err := engine.IndexDocument(context.Background(), testIndex, map[string]string{
		domain.FieldTitle: "Broken", domain.FieldAuthor: "X", domain.FieldYear: "18", domain.FieldText: "war",
	})
	require.NoError(t, err)
	storeBook(t, repo, "Fine", "X", 1900, "war")

	books, err := NewCatalogService(repo).BooksWithWord(context.Background(), "war")
	require.NoError(t, err)
	assert.Equal(t, []string{"Fine"}, titles(books))
}
