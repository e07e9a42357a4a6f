package driving

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// CatalogService answers the canonical lookups over the corpus.
// Empty results are returned as empty slices, never as errors.
type CatalogService interface {
	// BooksWithWord lists books whose text matches word.
	BooksWithWord(ctx context.Context, word string) ([]domain.Book, error)

	// BooksByAuthorWithWord lists books by author whose text matches word.
	BooksByAuthorWithWord(ctx context.Context, author, word string) ([]domain.Book, error)

	// BooksInRangeWithoutWord lists books published in [from, to] whose text does not match word.
	BooksInRangeWithoutWord(ctx context.Context, from, to int, word string) ([]domain.Book, error)

	// AverageYear returns the rounded mean publication year of an author.
	// found is false when the author has no books.
	AverageYear(ctx context.Context, author string) (year int, found bool, err error)
}
