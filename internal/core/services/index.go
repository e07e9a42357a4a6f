package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/ports/driving"
	"github.com/custodia-labs/folio/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexService bootstraps the corpus index.
type IndexService struct {
	engine  driven.SearchEngine
	index   string
	schema  domain.IndexSchema
	timeout time.Duration
}

// NewIndexService creates a new index service.
func NewIndexService(
	engine driven.SearchEngine, index string, schema domain.IndexSchema, timeout time.Duration,
) *IndexService {
	return &IndexService{engine: engine, index: index, schema: schema, timeout: timeout}
}

// Ping verifies the engine is reachable.
func (s *IndexService) Ping(ctx context.Context) error {
	if s.engine == nil {
		return domain.ErrEngineUnavailable
	}
	ctx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.engine.Ping(ctx); err != nil {
		if errors.Is(err, domain.ErrConnection) {
			return err
		}
		return fmt.Errorf("%w: %w", domain.ErrConnection, err)
	}
	return nil
}

// Create creates the index unless it already exists.
func (s *IndexService) Create(ctx context.Context) (bool, error) {
	if s.engine == nil {
		return false, domain.ErrEngineUnavailable
	}
	logger.Debug("Creating index %s", s.index)

	existsCtx, cancel := withCallTimeout(ctx, s.timeout)
	exists, err := s.engine.IndexExists(existsCtx, s.index)
	cancel()
	if err != nil {
		return false, fmt.Errorf("%w: check %s: %w", domain.ErrIndexCreation, s.index, err)
	}
	if exists {
		logger.Info("Index %s already exists", s.index)
		return false, nil
	}

	createCtx, cancel := withCallTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.engine.CreateIndex(createCtx, s.index, s.schema); err != nil {
		if errors.Is(err, domain.ErrIndexExists) {
			return false, nil
		}
		if errors.Is(err, domain.ErrIndexCreation) {
			return false, err
		}
		return false, fmt.Errorf("%w: %s: %w", domain.ErrIndexCreation, s.index, err)
	}
	return true, nil
}
