package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService runs the canonical lookups against the corpus.
type CatalogService struct {
	repo *CorpusRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(repo *CorpusRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// BooksWithWord lists books whose text matches word.
func (s *CatalogService) BooksWithWord(ctx context.Context, word string) ([]domain.Book, error) {
	if err := requireText("word", word); err != nil {
		return nil, err
	}
	return s.books(ctx, WordQuery(word))
}

// BooksByAuthorWithWord lists books by author whose text matches word.
func (s *CatalogService) BooksByAuthorWithWord(ctx context.Context, author, word string) ([]domain.Book, error) {
	if err := requireText("author", author); err != nil {
		return nil, err
	}
	if err := requireText("word", word); err != nil {
		return nil, err
	}
	return s.books(ctx, AuthorWordQuery(author, word))
}

// BooksInRangeWithoutWord lists books published in [from, to] whose text does not match word.
func (s *CatalogService) BooksInRangeWithoutWord(
	ctx context.Context, from, to int, word string,
) ([]domain.Book, error) {
	if err := requireText("word", word); err != nil {
		return nil, err
	}
	if from > to {
		return nil, fmt.Errorf("%w: from year %d after until year %d", domain.ErrInvalidInput, from, to)
	}
	return s.books(ctx, DateRangeExcludingWordQuery(from, to, word))
}

// AverageYear returns the author's mean publication year rounded half up.
func (s *CatalogService) AverageYear(ctx context.Context, author string) (int, bool, error) {
	if err := requireText("author", author); err != nil {
		return 0, false, err
	}
	books, err := s.books(ctx, AuthorQuery(author))
	if err != nil {
		return 0, false, err
	}
	if len(books) == 0 {
		return 0, false, nil
	}

	years := make([]int, len(books))
	for i := range books {
		years[i] = books[i].Identity.Year
	}
	return MeanYear(years), true, nil
}

// MeanYear averages years and rounds half up using exact integer arithmetic.
// It returns 0 for an empty slice.
func MeanYear(years []int) int {
	n := len(years)
	if n == 0 {
		return 0
	}
	sum := 0
	for _, y := range years {
		sum += y
	}
	// floor((sum/n) + 1/2) == floor((2*sum + n) / (2*n)) for non-negative sums.
	return (2*sum + n) / (2 * n)
}

func (s *CatalogService) books(ctx context.Context, q domain.Query) ([]domain.Book, error) {
	logger.Debug("Query: %s", q)
	hits, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	books := make([]domain.Book, 0, len(hits))
	for _, hit := range hits {
		identity, err := hit.Identity()
		if err != nil {
			logger.Warn("Ignoring document with unreadable identity: %v", err)
			continue
		}
		books = append(books, domain.Book{ID: hit.ID, Identity: identity})
	}
	logger.Debug("Matched %d books", len(books))
	return books, nil
}

func requireText(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	return nil
}
