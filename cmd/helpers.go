package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/catalog"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/db"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/ingest"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/scorer"
	"github.com/KaunteyShah/credit-risk-analysis-tool/internal/store"
)

// initStore opens the configured persistence backend.
func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "", "sqlite":
		return store.NewSQLite(cfg.Store.Path)
	case "postgres":
		if cfg.Store.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires store.database_url")
		}
		pool, err := db.Connect(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool.MaxConns, cfg.Store.Pool.MinConns)
		if err != nil {
			return nil, err
		}
		return store.NewPostgres(pool), nil
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}

// loadCatalog reads and validates the code table from the configured path,
// unless overridden.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		path = cfg.Catalog.Path
	}
	codes, err := ingest.ReadCatalog(path)
	if err != nil {
		return nil, err
	}
	return catalog.Load(codes)
}

// initScorer builds a scorer over the loaded catalog using configured weights
// and sector rules.
func initScorer(catalogPath string) (*scorer.Scorer, *catalog.Catalog, error) {
	cat, err := loadCatalog(catalogPath)
	if err != nil {
		return nil, nil, err
	}
	return scorer.New(cat, cfg.Scorer), cat, nil
}
