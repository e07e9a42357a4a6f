package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// CorpusRepository maps book identities to stored documents on top of the
// search engine. Every method performs exactly one engine round trip.
type CorpusRepository struct {
	engine     driven.SearchEngine
	index      string
	timeout    time.Duration
	maxResults int
}

// NewCorpusRepository creates a repository over index.
// timeout bounds each engine call; maxResults caps hits per search.
func NewCorpusRepository(
	engine driven.SearchEngine, index string, timeout time.Duration, maxResults int,
) *CorpusRepository {
	if maxResults <= 0 {
		maxResults = domain.DefaultSettings().Search.MaxResults
	}
	return &CorpusRepository{
		engine:     engine,
		index:      index,
		timeout:    timeout,
		maxResults: maxResults,
	}
}

// Index returns the corpus index name.
func (r *CorpusRepository) Index() string {
	return r.index
}

// Exists reports whether a document matching the identity is stored.
func (r *CorpusRepository) Exists(ctx context.Context, id domain.BookIdentity) (bool, error) {
	if r.engine == nil {
		return false, domain.ErrEngineUnavailable
	}
	q := IdentityQuery(id)

	ctx, cancel := withCallTimeout(ctx, r.timeout)
	defer cancel()

	hits, err := r.engine.Search(ctx, r.index, q, 1)
	if err != nil {
		return false, queryError("search", q.String(), err)
	}
	return len(hits) > 0, nil
}

// Put stores a document unconditionally. Callers check Exists first.
func (r *CorpusRepository) Put(ctx context.Context, id domain.BookIdentity, text string) (string, error) {
	if r.engine == nil {
		return "", domain.ErrEngineUnavailable
	}
	fields := map[string]string{
		domain.FieldTitle:  id.Title,
		domain.FieldAuthor: id.Author,
		domain.FieldYear:   id.YearString(),
		domain.FieldText:   text,
	}

	ctx, cancel := withCallTimeout(ctx, r.timeout)
	defer cancel()

	docID, err := r.engine.IndexDocument(ctx, r.index, fields)
	if err != nil {
		return "", queryError("index", id.Key(), err)
	}
	return docID, nil
}

// Find runs a query. An empty slice is a normal outcome.
func (r *CorpusRepository) Find(ctx context.Context, q domain.Query) ([]domain.Hit, error) {
	if r.engine == nil {
		return nil, domain.ErrEngineUnavailable
	}

	ctx, cancel := withCallTimeout(ctx, r.timeout)
	defer cancel()

	hits, err := r.engine.Search(ctx, r.index, q, r.maxResults)
	if err != nil {
		return nil, queryError("search", q.String(), err)
	}
	if hits == nil {
		hits = []domain.Hit{}
	}
	return hits, nil
}

// queryError attaches operation context unless the engine already did.
func queryError(op, target string, err error) error {
	var qe *domain.QueryError
	if errors.As(err, &qe) {
		return err
	}
	return &domain.QueryError{Operation: op, Target: target, Err: err}
}
