// Package card defines cards, the tasks drilled from them and their storage.
package card

import "fmt"

// TaskTypeCode identifies the kind of drill performed on a card.
type TaskTypeCode string

const (
	TaskTypeTranslate12 TaskTypeCode = "translate_12"
	TaskTypeTranslate21 TaskTypeCode = "translate_21"
	TaskTypeFillGaps    TaskTypeCode = "fill_gaps"
)

// TaskTypeCodes lists every supported task type.
var TaskTypeCodes = []TaskTypeCode{TaskTypeTranslate12, TaskTypeTranslate21, TaskTypeFillGaps}

// Task is one drill of a card.
type Task struct {
	ID         int64 `db:"id"`
	CardID     int64 `db:"card_id"`
	TaskTypeID int64 `db:"task_type_id"`
	// FolderID is the folder of the owning card.
	FolderID int64 `db:"folder_id"`
}

// Card is either a *TranslateCard or a *FillGapsCard.
type Card interface {
	CardID() int64
	isCard()
}

// TranslateCard is a pair of texts in two languages.
type TranslateCard struct {
	ID        int64  `db:"id"`
	FolderID  int64  `db:"folder_id"`
	Lang1ID   int64  `db:"lang1_id"`
	ReadOnly1 bool   `db:"read_only1"`
	Text1     string `db:"text1"`
	Tran1     string `db:"tran1"`
	Lang2ID   int64  `db:"lang2_id"`
	ReadOnly2 bool   `db:"read_only2"`
	Text2     string `db:"text2"`
	Tran2     string `db:"tran2"`
	Notes     string `db:"notes"`
}

func (c *TranslateCard) CardID() int64 { return c.ID }
func (*TranslateCard) isCard()         {}

// FillGapsCard is a text with gaps encoded as [[answer|hint|note]].
type FillGapsCard struct {
	ID          int64  `db:"id"`
	FolderID    int64  `db:"folder_id"`
	LangID      int64  `db:"lang_id"`
	Description string `db:"descr"`
	Text        string `db:"text"`
	Notes       string `db:"notes"`
}

func (c *FillGapsCard) CardID() int64 { return c.ID }
func (*FillGapsCard) isCard()         {}

// Folder is a node of the folder tree.
type Folder struct {
	ID       int64  `db:"id"`
	ParentID *int64 `db:"parent_id"`
	Name     string `db:"name"`
}

// FolderWithPath is a folder with its slash separated path from the root, e.g. "/en/verbs".
type FolderWithPath struct {
	ID   int64
	Path string
}

// TaskTypeFilter selects tasks of one type over given languages.
// Lang2ID is 0 for fill gaps tasks.
type TaskTypeFilter struct {
	TaskTypeID int64 `db:"task_type_id"`
	Lang1ID    int64 `db:"lang1_id"`
	Lang2ID    int64 `db:"lang2_id"`
}

// Lookup resolves ids of languages and task types.
type Lookup struct {
	languages     map[int64]string
	taskTypeCodes map[int64]TaskTypeCode
	taskTypeIDs   map[TaskTypeCode]int64
}

// NewLookup creates a lookup from languages and task types keyed by id.
func NewLookup(languages map[int64]string, taskTypes map[int64]TaskTypeCode) *Lookup {
	l := &Lookup{
		languages:     make(map[int64]string, len(languages)),
		taskTypeCodes: make(map[int64]TaskTypeCode, len(taskTypes)),
		taskTypeIDs:   make(map[TaskTypeCode]int64, len(taskTypes)),
	}
	for id, name := range languages {
		l.languages[id] = name
	}
	for id, code := range taskTypes {
		l.taskTypeCodes[id] = code
		l.taskTypeIDs[code] = id
	}
	return l
}

// LanguageName returns the name of a language, or "lang#<id>" when it is unknown.
func (l *Lookup) LanguageName(id int64) string {
	if name, ok := l.languages[id]; ok {
		return name
	}
	return fmt.Sprintf("lang#%d", id)
}

// TaskTypeCode returns the code of a task type.
func (l *Lookup) TaskTypeCode(id int64) (TaskTypeCode, bool) {
	code, ok := l.taskTypeCodes[id]
	return code, ok
}

// TaskTypeID returns the id of a task type code.
func (l *Lookup) TaskTypeID(code TaskTypeCode) (int64, bool) {
	id, ok := l.taskTypeIDs[code]
	return id, ok
}

// Describe returns a human readable label of a filter, e.g. "PL -> EN" or "Fill gaps EN".
func (l *Lookup) Describe(filter TaskTypeFilter) string {
	code, _ := l.TaskTypeCode(filter.TaskTypeID)
	switch code {
	case TaskTypeTranslate12:
		return l.LanguageName(filter.Lang1ID) + " -> " + l.LanguageName(filter.Lang2ID)
	case TaskTypeTranslate21:
		return l.LanguageName(filter.Lang2ID) + " -> " + l.LanguageName(filter.Lang1ID)
	case TaskTypeFillGaps:
		return "Fill gaps " + l.LanguageName(filter.Lang1ID)
	default:
		return fmt.Sprintf("task type #%d", filter.TaskTypeID)
	}
}
