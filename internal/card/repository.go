package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/remem/internal/database"
)

// ErrNotFound is returned when a card does not exist.
var ErrNotFound = errors.New("card not found")

// batchSize bounds the number of ids bound into one query.
const batchSize = 100

const (
	cardTypeTranslate = "translate"
	cardTypeFillGaps  = "fill_gaps"
)

// folderTreeCTE selects the given folders and all their descendants.
const folderTreeCTE = `WITH RECURSIVE folders(id) AS (
		SELECT id FROM folder WHERE id IN (?)
		UNION ALL
		SELECT ch.id FROM folders pr INNER JOIN folder ch ON pr.id = ch.parent_id
	)`

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_repository.go -package=mock_card

// Repository reads folders, cards and tasks.
type Repository interface {
	LoadLookup(ctx context.Context) (*Lookup, error)
	// ListFolders returns every folder with its path, ordered by path.
	ListFolders(ctx context.Context) ([]FolderWithPath, error)
	// ListTaskTypes returns the distinct task types of the cards under the folders and their descendants.
	ListTaskTypes(ctx context.Context, folderIDs []int64) ([]TaskTypeFilter, error)
	// LoadTaskPool returns the ids of the tasks under the folders and their descendants matching any filter.
	LoadTaskPool(ctx context.Context, folderIDs []int64, filters []TaskTypeFilter) ([]int64, error)
	FindTasks(ctx context.Context, taskIDs []int64) ([]Task, error)
	FindCard(ctx context.Context, cardID int64) (Card, error)
}

// DBRepository implements Repository with sqlx.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

func (r *DBRepository) LoadLookup(ctx context.Context) (*Lookup, error) {
	var languages []struct {
		ID   int64  `db:"id"`
		Name string `db:"name"`
	}
	if err := r.db.SelectContext(ctx, &languages, "SELECT id, name FROM language ORDER BY id"); err != nil {
		return nil, database.WrapStorage("select language", fmt.Errorf("db.SelectContext(language) > %w", err))
	}
	var taskTypes []struct {
		ID   int64        `db:"id"`
		Code TaskTypeCode `db:"code"`
	}
	if err := r.db.SelectContext(ctx, &taskTypes, "SELECT id, code FROM task_type ORDER BY id"); err != nil {
		return nil, database.WrapStorage("select task_type", fmt.Errorf("db.SelectContext(task_type) > %w", err))
	}

	languageNames := make(map[int64]string, len(languages))
	for _, l := range languages {
		languageNames[l.ID] = l.Name
	}
	taskTypeCodes := make(map[int64]TaskTypeCode, len(taskTypes))
	for _, t := range taskTypes {
		taskTypeCodes[t.ID] = t.Code
	}
	return NewLookup(languageNames, taskTypeCodes), nil
}

func (r *DBRepository) ListFolders(ctx context.Context) ([]FolderWithPath, error) {
	var folders []Folder
	if err := r.db.SelectContext(ctx, &folders, "SELECT id, parent_id, name FROM folder"); err != nil {
		return nil, database.WrapStorage("select folder", fmt.Errorf("db.SelectContext(folder) > %w", err))
	}
	return buildFolderPaths(folders), nil
}

// buildFolderPaths resolves the path of every folder reachable from a root.
func buildFolderPaths(folders []Folder) []FolderWithPath {
	children := make(map[int64][]Folder)
	var roots []Folder
	for _, f := range folders {
		if f.ParentID == nil {
			roots = append(roots, f)
			continue
		}
		children[*f.ParentID] = append(children[*f.ParentID], f)
	}

	var result []FolderWithPath
	var walk func(f Folder, parentPath string)
	walk = func(f Folder, parentPath string) {
		path := parentPath + "/" + f.Name
		result = append(result, FolderWithPath{ID: f.ID, Path: path})
		for _, child := range children[f.ID] {
			walk(child, path)
		}
	}
	for _, root := range roots {
		walk(root, "")
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Path != result[j].Path {
			return result[i].Path < result[j].Path
		}
		return result[i].ID < result[j].ID
	})
	return result
}

func (r *DBRepository) ListTaskTypes(ctx context.Context, folderIDs []int64) ([]TaskTypeFilter, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(folderTreeCTE+`
		SELECT DISTINCT
			t.task_type_id AS task_type_id,
			COALESCE(ct.lang1_id, cf.lang_id) AS lang1_id,
			COALESCE(ct.lang2_id, 0) AS lang2_id
		FROM folders f
			INNER JOIN card c ON c.folder_id = f.id
			INNER JOIN task t ON t.card_id = c.id
			LEFT JOIN card_tran ct ON ct.id = c.id
			LEFT JOIN card_fill cf ON cf.id = c.id
		WHERE ct.id IS NOT NULL OR cf.id IS NOT NULL
		ORDER BY task_type_id, lang1_id, lang2_id`, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(task_type) > %w", err)
	}

	var filters []TaskTypeFilter
	if err := r.db.SelectContext(ctx, &filters, r.db.Rebind(query), args...); err != nil {
		return nil, database.WrapStorage("select task types", fmt.Errorf("db.SelectContext(task) > %w", err))
	}
	return filters, nil
}

func (r *DBRepository) LoadTaskPool(ctx context.Context, folderIDs []int64, filters []TaskTypeFilter) ([]int64, error) {
	if len(folderIDs) == 0 || len(filters) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(filters))
	filterArgs := make([]any, 0, len(filters)*3)
	for _, f := range filters {
		conditions = append(conditions, "(t.task_type_id = ? AND COALESCE(ct.lang1_id, cf.lang_id) = ? AND COALESCE(ct.lang2_id, 0) = ?)")
		filterArgs = append(filterArgs, f.TaskTypeID, f.Lang1ID, f.Lang2ID)
	}
	query, args, err := sqlx.In(folderTreeCTE+`
		SELECT DISTINCT t.id
		FROM folders f
			INNER JOIN card c ON c.folder_id = f.id
			INNER JOIN task t ON t.card_id = c.id
			LEFT JOIN card_tran ct ON ct.id = c.id
			LEFT JOIN card_fill cf ON cf.id = c.id
		WHERE `+strings.Join(conditions, " OR ")+`
		ORDER BY t.id`, append([]any{folderIDs}, filterArgs...)...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(task) > %w", err)
	}

	var taskIDs []int64
	if err := r.db.SelectContext(ctx, &taskIDs, r.db.Rebind(query), args...); err != nil {
		return nil, database.WrapStorage("select task pool", fmt.Errorf("db.SelectContext(task) > %w", err))
	}
	slog.Debug("loaded task pool", "folders", len(folderIDs), "filters", len(filters), "tasks", len(taskIDs))
	return taskIDs, nil
}

func (r *DBRepository) FindTasks(ctx context.Context, taskIDs []int64) ([]Task, error) {
	ids := slices.Clone(taskIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	var result []Task
	for start := 0; start < len(ids); start += batchSize {
		batch := ids[start:min(start+batchSize, len(ids))]
		query, args, err := sqlx.In(`SELECT t.id, t.card_id, t.task_type_id, c.folder_id
			FROM task t INNER JOIN card c ON c.id = t.card_id
			WHERE t.id IN (?)
			ORDER BY t.id`, batch)
		if err != nil {
			return nil, fmt.Errorf("sqlx.In(task) > %w", err)
		}
		var tasks []Task
		if err := r.db.SelectContext(ctx, &tasks, r.db.Rebind(query), args...); err != nil {
			return nil, database.WrapStorage("select task", fmt.Errorf("db.SelectContext(task) > %w", err))
		}
		result = append(result, tasks...)
	}
	return result, nil
}

func (r *DBRepository) FindCard(ctx context.Context, cardID int64) (Card, error) {
	var cardType string
	err := r.db.GetContext(ctx, &cardType, r.db.Rebind(`SELECT ct.code
		FROM card c INNER JOIN card_type ct ON ct.id = c.card_type_id
		WHERE c.id = ?`), cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, cardID)
	}
	if err != nil {
		return nil, database.WrapStorage("select card", fmt.Errorf("db.GetContext(card) > %w", err))
	}

	switch cardType {
	case cardTypeTranslate:
		var c TranslateCard
		err = r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT c.id, c.folder_id,
				tr.lang1_id, tr.read_only1, tr.text1, tr.tran1,
				tr.lang2_id, tr.read_only2, tr.text2, tr.tran2, tr.notes
			FROM card c INNER JOIN card_tran tr ON tr.id = c.id
			WHERE c.id = ?`), cardID)
		if err == nil {
			return &c, nil
		}
	case cardTypeFillGaps:
		var c FillGapsCard
		err = r.db.GetContext(ctx, &c, r.db.Rebind(`SELECT c.id, c.folder_id, f.lang_id, f.descr, f.text, f.notes
			FROM card c INNER JOIN card_fill f ON f.id = c.id
			WHERE c.id = ?`), cardID)
		if err == nil {
			return &c, nil
		}
	default:
		return nil, fmt.Errorf("unexpected card type %q of card %d", cardType, cardID)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no %s details for id %d", ErrNotFound, cardType, cardID)
	}
	return nil, database.WrapStorage("select card details", fmt.Errorf("db.GetContext(%s) > %w", cardType, err))
}
