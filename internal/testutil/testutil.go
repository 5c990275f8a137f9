// Package testutil provides shared test helpers for creating config files and database fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/remem/internal/config"
	"github.com/at-ishikawa/remem/internal/database"
)

// SetupTestConfig creates a config file using a SQLite database and a history directory under tmpDir.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	configContent := fmt.Sprintf(`database:
  driver: sqlite
  path: %s
history:
  backend: database
  yaml_file: %s
repeat:
  buckets:
    short: 2m 5m
    long: 1d
  break_reminder_interval: 30m
`,
		filepath.Join(tmpDir, "databases", "remem.sqlite"),
		filepath.Join(tmpDir, "history", "task_history.yml"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// NewSQLiteDB opens an in-memory SQLite database with the schema applied.
// The database is closed when the test finishes.
func NewSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:", ConnectAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.ApplySchema(context.Background(), db))
	return db
}

// TranslateTaskOption configures optional fields when creating a translate task fixture.
type TranslateTaskOption func(*translateTaskConfig)

type translateTaskConfig struct {
	folderID   int64
	taskTypeID int64
	lang1ID    int64
	lang2ID    int64
	text1      string
	text2      string
}

// WithFolder puts the card of the task into a folder.
func WithFolder(folderID int64) TranslateTaskOption {
	return func(cfg *translateTaskConfig) {
		cfg.folderID = folderID
	}
}

// WithTaskType sets the task type of the task.
func WithTaskType(taskTypeID int64) TranslateTaskOption {
	return func(cfg *translateTaskConfig) {
		cfg.taskTypeID = taskTypeID
	}
}

// WithLanguages sets both languages of the card.
func WithLanguages(lang1ID, lang2ID int64) TranslateTaskOption {
	return func(cfg *translateTaskConfig) {
		cfg.lang1ID = lang1ID
		cfg.lang2ID = lang2ID
	}
}

// CreateTranslateTask inserts a translate card and one task of it, both with the given id.
// The language and folder rows it refers to must exist.
// By default the card is in folder 1, translates language 1 to 2 and the task is translate_12.
func CreateTranslateTask(t *testing.T, db *sqlx.DB, id int64, opts ...TranslateTaskOption) {
	t.Helper()

	cfg := translateTaskConfig{
		folderID:   1,
		taskTypeID: 1,
		lang1ID:    1,
		lang2ID:    2,
		text1:      fmt.Sprintf("text1-%d", id),
		text2:      fmt.Sprintf("text2-%d", id),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	db.MustExec(db.Rebind(`INSERT INTO card (id, folder_id, card_type_id) VALUES (?, ?, 1)`), id, cfg.folderID)
	db.MustExec(db.Rebind(`INSERT INTO card_tran (id, lang1_id, text1, lang2_id, text2) VALUES (?, ?, ?, ?, ?)`),
		id, cfg.lang1ID, cfg.text1, cfg.lang2ID, cfg.text2)
	db.MustExec(db.Rebind(`INSERT INTO task (id, card_id, task_type_id) VALUES (?, ?, ?)`), id, id, cfg.taskTypeID)
}
