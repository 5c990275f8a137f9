package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/remem/internal/database"
)

type yamlFile struct {
	Records []Record `yaml:"records"`
}

// YAMLRepository keeps the history in a single YAML file, rewritten on every append.
type YAMLRepository struct {
	path    string
	now     func() time.Time
	records []Record
	loaded  bool
}

// NewYAMLRepository creates a repository backed by the file at path. The file is created on the first append.
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path, now: time.Now}
}

func (r *YAMLRepository) load() error {
	if r.loaded {
		return nil
	}
	content, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		r.loaded = true
		return nil
	}
	if err != nil {
		return database.WrapStorage("read history file", fmt.Errorf("os.ReadFile(%s) > %w", r.path, err))
	}

	var file yamlFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return database.WrapStorage("read history file", fmt.Errorf("yaml.Unmarshal(%s) > %w", r.path, err))
	}
	r.records = file.Records
	r.loaded = true
	return nil
}

// FetchRecent returns up to limitPerTask records per task, most recent first.
func (r *YAMLRepository) FetchRecent(_ context.Context, taskIDs []int64, limitPerTask int) (map[int64][]Record, error) {
	if err := r.load(); err != nil {
		return nil, err
	}

	result := make(map[int64][]Record)
	if limitPerTask <= 0 {
		return result, nil
	}
	wanted := make(map[int64]struct{}, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = struct{}{}
	}
	for _, rec := range r.records {
		if _, ok := wanted[rec.TaskID]; ok {
			result[rec.TaskID] = append(result[rec.TaskID], rec)
		}
	}
	for taskID, records := range result {
		sort.SliceStable(records, func(i, j int) bool {
			if records[i].Time != records[j].Time {
				return records[i].Time > records[j].Time
			}
			return records[i].ID > records[j].ID
		})
		if len(records) > limitPerTask {
			records = records[:limitPerTask]
		}
		result[taskID] = records
	}
	return result, nil
}

// Append adds rec to the file.
func (r *YAMLRepository) Append(_ context.Context, rec *Record) error {
	if err := validateMark(rec.Mark); err != nil {
		return err
	}
	if err := r.load(); err != nil {
		return err
	}
	if rec.Time == 0 {
		rec.Time = r.now().Unix()
	}
	var lastID int64
	for _, existing := range r.records {
		lastID = max(lastID, existing.ID)
	}
	rec.ID = lastID + 1

	records := append(r.records[:len(r.records):len(r.records)], *rec)
	if err := writeYAMLFile(r.path, yamlFile{Records: records}); err != nil {
		return database.WrapStorage("write history file", err)
	}
	r.records = records
	return nil
}

func writeYAMLFile(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	content, err := yaml.Marshal(value)
	if err != nil {
		return fmt.Errorf("yaml.Marshal() > %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0644); err != nil {
		return fmt.Errorf("os.WriteFile(%s) > %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("os.Rename(%s, %s) > %w", tmpPath, path, err)
	}
	return nil
}
