package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// refreshWaitFor makes an indexed document visible to search before the call returns.
const refreshWaitFor = "wait_for"

// Engine is an Elasticsearch-backed search engine.
type Engine struct {
	es      *elasticsearch.Client
	limiter *RateLimiter
	address string
}

// Option configures an Engine.
type Option func(*elasticsearch.Config)

// WithTransport overrides the HTTP transport, mainly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(cfg *elasticsearch.Config) {
		cfg.Transport = rt
	}
}

// New creates a client for the engine described by settings.
// No request is sent until the first call.
func New(settings domain.EngineSettings, opts ...Option) (*Engine, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{settings.Address()},
		Username:  settings.Username,
		Password:  settings.Password,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	es, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}

	return &Engine{
		es:      es,
		limiter: NewRateLimiter(settings.RequestsPerSecond, settings.Burst),
		address: settings.Address(),
	}, nil
}

// Ping checks the engine answers on its root endpoint.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	res, err := e.es.Ping(e.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("%w at %s: %w", domain.ErrConnection, e.address, err)
	}
	defer drain(res)

	if res.IsError() {
		return fmt.Errorf("%w at %s: %s", domain.ErrConnection, e.address, res.Status())
	}
	logger.Debug("Connected to %s", e.address)
	return nil
}

// IndexExists reports whether the named index is present.
func (e *Engine) IndexExists(ctx context.Context, index string) (bool, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return false, err
	}
	res, err := e.es.Indices.Exists([]string{index}, e.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, err
	}
	defer drain(res)

	switch res.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, e.responseError(res)
	}
}

// CreateIndex creates the index with the book mapping.
func (e *Engine) CreateIndex(ctx context.Context, index string, schema domain.IndexSchema) error {
	body, err := mapping(schema)
	if err != nil {
		return fmt.Errorf("%w: encode mapping: %w", domain.ErrIndexCreation, err)
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}

	res, err := e.es.Indices.Create(index,
		e.es.Indices.Create.WithBody(bytes.NewReader(body)),
		e.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return err
	}
	defer drain(res)

	if res.IsError() {
		err := e.responseError(res)
		if strings.Contains(err.Error(), "resource_already_exists_exception") {
			return domain.ErrIndexExists
		}
		return fmt.Errorf("%w: %w", domain.ErrIndexCreation, err)
	}
	return nil
}

// IndexDocument stores one document and waits for it to become searchable.
func (e *Engine) IndexDocument(ctx context.Context, index string, fields map[string]string) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return "", err
	}

	res, err := e.es.Index(index, bytes.NewReader(body),
		e.es.Index.WithContext(ctx),
		e.es.Index.WithRefresh(refreshWaitFor),
	)
	if err != nil {
		return "", err
	}
	defer drain(res)

	if res.IsError() {
		return "", e.responseError(res)
	}

	var out indexResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode index response: %w", err)
	}
	return out.ID, nil
}

// Search runs a bool query and returns at most size hits.
func (e *Engine) Search(ctx context.Context, index string, q domain.Query, size int) ([]domain.Hit, error) {
	body, err := searchBody(q)
	if err != nil {
		return nil, err
	}
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(index),
		e.es.Search.WithBody(bytes.NewReader(body)),
		e.es.Search.WithSize(size),
	)
	if err != nil {
		return nil, err
	}
	defer drain(res)

	if res.IsError() {
		return nil, e.responseError(res)
	}

	var out searchResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	hits := make([]domain.Hit, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		fields := make(map[string]string, len(h.Source))
		for k, v := range h.Source {
			fields[k] = stringify(k, v)
		}
		hits = append(hits, domain.Hit{ID: h.ID, Fields: fields})
	}
	return hits, nil
}

// TermVectors returns term frequencies of field for one document.
func (e *Engine) TermVectors(ctx context.Context, index, id, field string) (domain.TermVector, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := e.es.Termvectors(index,
		e.es.Termvectors.WithContext(ctx),
		e.es.Termvectors.WithDocumentID(id),
		e.es.Termvectors.WithFields(field),
		e.es.Termvectors.WithTermStatistics(false),
		e.es.Termvectors.WithFieldStatistics(false),
	)
	if err != nil {
		return nil, err
	}
	defer drain(res)

	if res.IsError() {
		return nil, e.responseError(res)
	}

	var out termVectorsResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode termvectors response: %w", err)
	}
	if !out.Found {
		return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
	}

	vec := make(domain.TermVector)
	for term, stats := range out.TermVectors[field].Terms {
		vec[term] = stats.TermFreq
	}
	return vec, nil
}

// Close releases idle connections.
func (e *Engine) Close() error {
	if t, ok := e.es.Transport.(interface{ CloseIdleConnections() }); ok {
		t.CloseIdleConnections()
	}
	return nil
}

// responseError turns an error response into a Go error and records
// back-off for 429 responses.
func (e *Engine) responseError(res *esapi.Response) error {
	if res.StatusCode == http.StatusTooManyRequests {
		e.limiter.RecordRateLimit(res.Header.Get("Retry-After"))
	}

	var envelope errorResponse
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil || envelope.Error.Type == "" {
		return errors.New(res.Status())
	}
	return fmt.Errorf("%s: %s: %s", res.Status(), envelope.Error.Type, envelope.Error.Reason)
}

func drain(res *esapi.Response) {
	if res == nil || res.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}

// stringify renders a _source value. Documents indexed by other clients may
// carry numbers; only the year is padded to four digits.
func stringify(field string, v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if field == domain.FieldYear {
			return domain.FormatYear(int(t))
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
