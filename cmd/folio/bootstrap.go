package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/folio/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio/internal/adapters/driven/search/elastic"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio/internal/connectors/filesystem"
	"github.com/custodia-labs/folio/internal/core/domain"
	"github.com/custodia-labs/folio/internal/core/ports/driven"
	"github.com/custodia-labs/folio/internal/core/services"
	"github.com/custodia-labs/folio/internal/logger"
)

// bootstrap resolves settings and wires adapters into services.
func bootstrap(_ context.Context, o cli.Overrides, connect bool) (*cli.Services, error) {
	settings, err := loadSettings(o)
	if err != nil {
		return nil, err
	}
	logger.Debug("Engine %s, index %s", settings.Engine.Address(), settings.Engine.Index)

	var closers []func() error

	journal, closeJournal := openJournal(settings.Journal)
	if closeJournal != nil {
		closers = append(closers, closeJournal)
	}

	var engine driven.SearchEngine
	if connect {
		es, err := elastic.New(settings.Engine)
		if err != nil {
			closeAll(closers)
			return nil, err
		}
		engine = es
		closers = append(closers, es.Close)
	}

	timeout := settings.Engine.Timeout
	repo := services.NewCorpusRepository(engine, settings.Engine.Index, timeout, settings.Search.MaxResults)

	return &cli.Services{
		Settings: settings,
		Index:    services.NewIndexService(engine, settings.Engine.Index, settings.Analysis.Schema(), timeout),
		Ingest:   services.NewIngestService(repo, filesystem.New(), journal, settings.Ingest.Workers),
		Catalog:  services.NewCatalogService(repo),
		TopWords: services.NewTopWordsService(repo, engine, timeout, settings.Ingest.Workers),
		History:  services.NewHistoryService(journal),
		Close:    func() error { return closeAll(closers) },
	}, nil
}

// loadSettings applies file, environment and then flag values.
func loadSettings(o cli.Overrides) (domain.Settings, error) {
	settings, err := file.NewLoader(o.ConfigPath).Load()
	if err != nil {
		return domain.Settings{}, fmt.Errorf("loading settings: %w", err)
	}

	if o.Host != "" {
		settings.Engine.Host = o.Host
	}
	if o.Port != 0 {
		settings.Engine.Port = o.Port
	}
	if o.Index != "" {
		settings.Engine.Index = o.Index
	}
	if err := settings.Validate(); err != nil {
		return domain.Settings{}, err
	}
	return settings, nil
}

// openJournal opens the on-disk journal, falling back to an in-memory one
// when it cannot be opened. A disabled journal yields nil.
func openJournal(cfg domain.JournalSettings) (driven.IngestJournal, func() error) {
	if !cfg.Enabled {
		return nil, nil
	}
	store, err := sqlite.NewStore(cfg.DataDir)
	if err != nil {
		logger.Warn("Ingest journal unavailable, history will not persist: %v", err)
		return memory.NewJournal(), nil
	}
	logger.Debug("Ingest journal at %s", store.Path())
	return store.IngestJournal(), store.Close
}

func closeAll(closers []func() error) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
