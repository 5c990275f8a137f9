// Package history stores the append-only grading records of tasks.
package history

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/remem/internal/database"
)

// batchSize bounds the number of task ids bound into one query.
const batchSize = 100

// Record is one grading of a task. Mark is within [0, 1], 1 being a perfect recall.
type Record struct {
	ID     int64   `db:"id" yaml:"id"`
	TaskID int64   `db:"task_id" yaml:"task_id"`
	Time   int64   `db:"repeated_at" yaml:"time"`
	Mark   float64 `db:"mark" yaml:"mark"`
	Note   string  `db:"note" yaml:"note,omitempty"`
}

//go:generate mockgen -source=repository.go -destination=../mocks/history/mock_repository.go -package=mock_history

// Repository reads and appends task history records.
type Repository interface {
	// FetchRecent returns up to limitPerTask records per task, most recent first.
	// Tasks without any record are absent from the map.
	FetchRecent(ctx context.Context, taskIDs []int64, limitPerTask int) (map[int64][]Record, error)
	// Append stores rec and assigns its ID and, when unset, its Time.
	Append(ctx context.Context, rec *Record) error
}

// DBRepository implements Repository on the task_hist table.
type DBRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db, now: time.Now}
}

// FetchRecent returns the latest records per task using a window over task_hist, 100 task ids per query.
func (r *DBRepository) FetchRecent(ctx context.Context, taskIDs []int64, limitPerTask int) (map[int64][]Record, error) {
	result := make(map[int64][]Record)
	if limitPerTask <= 0 {
		return result, nil
	}

	ids := uniqueIDs(taskIDs)
	for start := 0; start < len(ids); start += batchSize {
		batch := ids[start:min(start+batchSize, len(ids))]
		query, args, err := sqlx.In(`SELECT id, task_id, repeated_at, mark, note FROM (
				SELECT id, task_id, repeated_at, mark, note,
					ROW_NUMBER() OVER (PARTITION BY task_id ORDER BY repeated_at DESC, id DESC) AS rn
				FROM task_hist
				WHERE task_id IN (?)
			) h
			WHERE rn <= ?
			ORDER BY task_id, rn`, batch, limitPerTask)
		if err != nil {
			return nil, fmt.Errorf("sqlx.In(task_hist) > %w", err)
		}

		var records []Record
		if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
			return nil, database.WrapStorage("select task_hist", fmt.Errorf("db.SelectContext(task_hist) > %w", err))
		}
		for _, rec := range records {
			result[rec.TaskID] = append(result[rec.TaskID], rec)
		}
		slog.Debug("fetched task history", "tasks", len(batch), "records", len(records))
	}
	return result, nil
}

// Append inserts a new record.
func (r *DBRepository) Append(ctx context.Context, rec *Record) error {
	if err := validateMark(rec.Mark); err != nil {
		return err
	}
	if rec.Time == 0 {
		rec.Time = r.now().Unix()
	}

	query := `INSERT INTO task_hist (task_id, repeated_at, mark, note) VALUES (?, ?, ?, ?)`
	args := []any{rec.TaskID, rec.Time, rec.Mark, rec.Note}
	if r.db.DriverName() == "postgres" {
		// lib/pq does not support LastInsertId
		var id int64
		if err := r.db.QueryRowxContext(ctx, r.db.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return database.WrapStorage("insert task_hist", fmt.Errorf("db.QueryRowxContext(insert task_hist) > %w", err))
		}
		rec.ID = id
		return nil
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return database.WrapStorage("insert task_hist", fmt.Errorf("db.ExecContext(insert task_hist) > %w", err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return database.WrapStorage("insert task_hist", fmt.Errorf("result.LastInsertId() > %w", err))
	}
	rec.ID = id
	return nil
}

func validateMark(mark float64) error {
	if !(mark >= 0 && mark <= 1) {
		return fmt.Errorf("mark %v is out of the range [0, 1]", mark)
	}
	return nil
}

func uniqueIDs(ids []int64) []int64 {
	res := slices.Clone(ids)
	slices.Sort(res)
	return slices.Compact(res)
}
