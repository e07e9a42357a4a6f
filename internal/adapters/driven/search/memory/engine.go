// Package memory provides an in-process implementation of driven.SearchEngine
// for tests. State lives only as long as the Engine value, so the folio binary
// never selects it.
//
// It mimics the parts of the engine behaviour the core relies on: match
// clauses are analysed and succeed when any query token occurs in the field,
// year values compare as four digit strings, and term vectors count the
// analysed body tokens with stop words removed.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

type document struct {
	id     string
	fields map[string]string
}

type index struct {
	stopwords map[string]struct{}
	docs      []document
	byID      map[string]int
}

// Engine is an in-memory search engine.
type Engine struct {
	mu      sync.RWMutex
	indices map[string]*index
	nextID  int
}

// NewEngine creates an empty in-memory engine.
func NewEngine() *Engine {
	return &Engine{indices: make(map[string]*index)}
}

// Ping always succeeds.
func (e *Engine) Ping(ctx context.Context) error {
	return ctx.Err()
}

// IndexExists reports whether the named index is present.
func (e *Engine) IndexExists(_ context.Context, name string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.indices[name]
	return ok, nil
}

// CreateIndex creates an index using the schema's extra stop words for body text.
func (e *Engine) CreateIndex(_ context.Context, name string, schema domain.IndexSchema) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.indices[name]; ok {
		return domain.ErrIndexExists
	}
	e.indices[name] = newIndex(schema)
	return nil
}

// IndexDocument stores a document, creating the index on first use.
func (e *Engine) IndexDocument(ctx context.Context, name string, fields map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	idx, ok := e.indices[name]
	if !ok {
		idx = newIndex(domain.IndexSchema{})
		e.indices[name] = idx
	}

	e.nextID++
	id := "mem-" + strconv.Itoa(e.nextID)
	copied := make(map[string]string, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	idx.byID[id] = len(idx.docs)
	idx.docs = append(idx.docs, document{id: id, fields: copied})
	return id, nil
}

// Search returns matching documents in insertion order.
// The body text is not included in hit fields.
func (e *Engine) Search(ctx context.Context, name string, q domain.Query, size int) ([]domain.Hit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.indices[name]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", name, domain.ErrNotFound)
	}

	var hits []domain.Hit
	for _, doc := range idx.docs {
		if size > 0 && len(hits) >= size {
			break
		}
		if !idx.matches(doc, q) {
			continue
		}
		fields := make(map[string]string, 3)
		for _, f := range []string{domain.FieldTitle, domain.FieldAuthor, domain.FieldYear} {
			fields[f] = doc.fields[f]
		}
		hits = append(hits, domain.Hit{ID: doc.id, Fields: fields})
	}
	return hits, nil
}

// TermVectors counts analysed tokens of field in one document.
func (e *Engine) TermVectors(ctx context.Context, name, id, field string) (domain.TermVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.mu.RLock()
	defer e.mu.RUnlock()

	idx, ok := e.indices[name]
	if !ok {
		return nil, fmt.Errorf("index %s: %w", name, domain.ErrNotFound)
	}
	pos, ok := idx.byID[id]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	vec := make(domain.TermVector)
	for _, tok := range idx.analyze(field, idx.docs[pos].fields[field]) {
		vec[tok]++
	}
	return vec, nil
}

// Close is a no-op.
func (e *Engine) Close() error {
	return nil
}

func newIndex(schema domain.IndexSchema) *index {
	stop := make(map[string]struct{}, len(schema.ExtraStopwords))
	for _, w := range schema.ExtraStopwords {
		stop[strings.ToLower(w)] = struct{}{}
	}
	return &index{stopwords: stop, byID: make(map[string]int)}
}

func (idx *index) matches(doc document, q domain.Query) bool {
	for _, c := range q.Must {
		if !idx.clauseMatches(doc, c) {
			return false
		}
	}
	for _, c := range q.MustNot {
		if idx.clauseMatches(doc, c) {
			return false
		}
	}
	return true
}

func (idx *index) clauseMatches(doc document, c domain.Clause) bool {
	value := doc.fields[c.Field]
	if c.Kind == domain.ClauseRange {
		return value != "" && value >= c.From && value <= c.To
	}
	if c.Field == domain.FieldYear {
		return value == strings.TrimSpace(c.Text)
	}

	present := make(map[string]struct{})
	for _, tok := range idx.analyze(c.Field, value) {
		present[tok] = struct{}{}
	}
	for _, tok := range idx.analyze(c.Field, c.Text) {
		if _, ok := present[tok]; ok {
			return true
		}
	}
	return false
}

// analyze lowercases and splits on non letter/digit runes. Stop words only
// apply to the body text field.
func (idx *index) analyze(field, text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if field != domain.FieldText || len(idx.stopwords) == 0 {
		return raw
	}
	tokens := raw[:0]
	for _, tok := range raw {
		if _, stop := idx.stopwords[tok]; !stop {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}
