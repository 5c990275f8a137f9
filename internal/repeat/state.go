package repeat

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/history"
)

// Continuation tells the session what to do after an input was processed.
type Continuation int

const (
	ContinueTask Continuation = iota
	NextTask
	Exit
)

func (c Continuation) String() string {
	switch c {
	case ContinueTask:
		return "continue"
	case NextTask:
		return "next"
	case Exit:
		return "exit"
	default:
		return fmt.Sprintf("Continuation(%d)", int(c))
	}
}

// Indicator is the verdict shown for the last submitted input.
type Indicator int

const (
	IndicatorNone Indicator = iota
	IndicatorCorrect
	IndicatorWrong
)

const (
	commandPrefix = "`"

	commandExit       = "e"
	commandShowAnswer = "a"
	commandEditCard   = "u"
	commandStats      = "s"
)

// TaskState holds the fields shared by every task kind.
// EditCard, PrintStats and HistoryRecord are requests the session handles and clears.
type TaskState struct {
	Task          card.Task
	ShowAnswer    bool
	EditCard      bool
	PrintStats    bool
	HistoryRecord *history.Record
	Continuation  Continuation
	ErrMsg        string
}

// ClearRequests returns the state without the pending requests.
func (s TaskState) ClearRequests() TaskState {
	s.EditCard = false
	s.PrintStats = false
	s.HistoryRecord = nil
	return s
}

func (s TaskState) newRecord(mark float64, note string) *history.Record {
	return &history.Record{TaskID: s.Task.ID, Mark: mark, Note: note}
}

// Machine is a grading state machine of one task. Implementations are values, Next never modifies the receiver.
type Machine interface {
	State() TaskState
	Next(input string) Machine
	Render(c *Console)
	ClearRequests() Machine
}

// NewMachine creates the initial state for the task of a card.
func NewMachine(lookup *card.Lookup, c card.Card, task card.Task) (Machine, error) {
	code, ok := lookup.TaskTypeCode(task.TaskTypeID)
	if !ok {
		return nil, fmt.Errorf("unknown task type %d of task %d", task.TaskTypeID, task.ID)
	}

	switch code {
	case card.TaskTypeTranslate12, card.TaskTypeTranslate21:
		translateCard, ok := c.(*card.TranslateCard)
		if !ok {
			return nil, fmt.Errorf("task %d of type %s expects a translate card, got %T", task.ID, code, c)
		}
		state, err := NewTranslateState(lookup, translateCard, task)
		if err != nil {
			return nil, err
		}
		return state, nil
	case card.TaskTypeFillGaps:
		fillGapsCard, ok := c.(*card.FillGapsCard)
		if !ok {
			return nil, fmt.Errorf("task %d of type %s expects a fill gaps card, got %T", task.ID, code, c)
		}
		return NewFillGapsState(fillGapsCard, task), nil
	default:
		return nil, fmt.Errorf("unsupported task type %s of task %d", code, task.ID)
	}
}

// parseCommand returns the command of an input starting with a backtick.
func parseCommand(input string) (string, bool) {
	if !strings.HasPrefix(input, commandPrefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(input, commandPrefix)), true
}

func unknownCommand(cmd string) string {
	return fmt.Sprintf("Unknown command %q", cmd)
}

func commandsHint(showAnswer bool) string {
	hint := "e - exit    u - update card    s - show statistics"
	if showAnswer {
		hint = "a - show answer    " + hint
	}
	return hint
}
