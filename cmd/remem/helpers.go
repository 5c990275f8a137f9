package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/remem/internal/bucket"
	"github.com/at-ishikawa/remem/internal/config"
	"github.com/at-ishikawa/remem/internal/database"
	"github.com/at-ishikawa/remem/internal/history"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func newHistoryRepository(cfg config.HistoryConfig, db *sqlx.DB) (history.Repository, error) {
	switch cfg.Backend {
	case config.HistoryBackendDatabase:
		return history.NewDBRepository(db), nil
	case config.HistoryBackendYAML:
		return history.NewYAMLRepository(cfg.YAMLFile), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.Backend)
	}
}

// openStores opens the database and the history repository configured on top of it.
func openStores(cfg *config.Config) (*sqlx.DB, history.Repository, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	historyRepository, err := newHistoryRepository(cfg.History, db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, historyRepository, nil
}

// bucketsByName parses a configured bucket description. An empty name is allowed when only one is configured.
func bucketsByName(cfg config.RepeatConfig, name string) (bucket.Description, error) {
	if name == "" {
		names := cfg.BucketNames()
		if len(names) != 1 {
			return bucket.Description{}, fmt.Errorf("--buckets is required, configured ones are %v", names)
		}
		name = names[0]
	}
	value, ok := cfg.Buckets[name]
	if !ok {
		return bucket.Description{}, fmt.Errorf("unknown buckets %q", name)
	}
	desc, err := bucket.ParseDescription(value)
	if err != nil {
		return bucket.Description{}, fmt.Errorf("bucket.ParseDescription(%s) > %w", value, err)
	}
	return desc, nil
}
