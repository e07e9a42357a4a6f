package driven

import (
	"context"

	"github.com/custodia-labs/folio/internal/core/domain"
)

// SearchEngine is the external full-text engine holding the corpus.
// Tokenisation, scoring and term statistics all happen on its side.
type SearchEngine interface {
	// Ping checks connectivity. Failure wraps domain.ErrConnection.
	Ping(ctx context.Context) error

	// IndexExists reports whether the named index is present.
	IndexExists(ctx context.Context, index string) (bool, error)

	// CreateIndex creates the index with the book mapping.
	// Returns domain.ErrIndexExists if it is already present.
	CreateIndex(ctx context.Context, index string, schema domain.IndexSchema) error

	// IndexDocument stores one document and returns its engine-assigned ID.
	// The document is searchable once the call returns.
	IndexDocument(ctx context.Context, index string, fields map[string]string) (string, error)

	// Search runs a structured query and returns at most size hits.
	Search(ctx context.Context, index string, query domain.Query, size int) ([]domain.Hit, error)

	// TermVectors returns term frequencies of field for one document.
	TermVectors(ctx context.Context, index, id, field string) (domain.TermVector, error)

	// Close releases resources.
	Close() error
}
