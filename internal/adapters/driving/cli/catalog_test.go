package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio/internal/core/domain"
)

func sampleBooks() []domain.Book {
	return []domain.Book{
		{ID: "1", Identity: domain.BookIdentity{Title: "War and Peace", Author: "Leo Tolstoy", Year: 1869}},
		{ID: "2", Identity: domain.BookIdentity{Title: "Taras Bulba", Author: "Nikolai Gogol", Year: 1842}},
	}
}

func TestCountBooksCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.catalog.books = sampleBooks()

	out, _, err := run(t, "count-books-with-words", "war")
	require.NoError(t, err)

	assert.Equal(t, "war", ts.catalog.gotWord)
	assert.Equal(t, "Found: 2\nWar and Peace, Leo Tolstoy, 1869\nTaras Bulba, Nikolai Gogol, 1842\n", out)
}

func TestCountBooksCmd_NotFoundExitsZero(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := run(t, "count-books-with-words", "zeppelin")
	require.NoError(t, err)
	assert.Equal(t, "Not found for this word\n", out)
}

func TestCountBooksCmd_RequiresWord(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := run(t, "count-books-with-words")
	assert.Error(t, err)
}

func TestCountBooksCmd_QueryFailure(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.catalog.err = &domain.QueryError{Operation: "search", Target: `+text:"war"`, Err: assert.AnError}

	_, _, err := run(t, "count-books-with-words", "war")
	assert.ErrorIs(t, err, domain.ErrQueryExecution)
}

func TestSearchBooksCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.catalog.books = sampleBooks()[:1]

	out, _, err := run(t, "search-books", "war", "-a", "Tolstoy")
	require.NoError(t, err)
	assert.Equal(t, "Tolstoy", ts.catalog.gotAuthor)
	assert.Equal(t, "war", ts.catalog.gotWord)
	assert.Contains(t, out, "Found: 1")
}

func TestSearchBooksCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := run(t, "search-books", "war", "-a", "Nobody")
	require.NoError(t, err)
	assert.Contains(t, out, "Not found for this word and author")
}

func TestSearchBooksCmd_RequiresAuthor(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := run(t, "search-books", "war")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearchDatesCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.catalog.books = sampleBooks()[1:]

	out, _, err := run(t, "search-dates", "war", "-f", "1830", "-u", "1850")
	require.NoError(t, err)
	assert.Equal(t, 1830, ts.catalog.gotFrom)
	assert.Equal(t, 1850, ts.catalog.gotTo)
	assert.Contains(t, out, "Taras Bulba, Nikolai Gogol, 1842")
}

func TestSearchDatesCmd_BadArguments(t *testing.T) {
	tests := [][]string{
		{"search-dates", "war", "-u", "1850"},
		{"search-dates", "war", "-f", "1830"},
		{"search-dates", "war", "-f", "183", "-u", "1850"},
		{"search-dates", "-f", "1830", "-u", "1850"},
	}
	for _, args := range tests {
		_, cleanup := setupTestServices()
		_, _, err := run(t, args...)
		assert.Error(t, err, args)
		cleanup()
	}
}

func TestSearchDatesCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := run(t, "search-dates", "war", "--from-date", "1830", "--until-date", "1840")
	require.NoError(t, err)
	assert.Contains(t, out, "Not found for this word and date range")
}

func TestCalcDateCmd(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.catalog.avg, ts.catalog.avgFound = 1870, true

	out, _, err := run(t, "calc-date", "-a", "Tolstoy")
	require.NoError(t, err)
	assert.Equal(t, "1870\n", out)
}

func TestCalcDateCmd_NotFound(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, _, err := run(t, "calc-date", "--author", "Nobody")
	require.NoError(t, err)
	assert.Equal(t, "Not found for this author\n", out)
}

func TestCalcDateCmd_RequiresAuthor(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, _, err := run(t, "calc-date")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
