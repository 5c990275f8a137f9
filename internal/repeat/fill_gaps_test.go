package repeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/history"
)

func newTestFillGapsState(text string) FillGapsState {
	return NewFillGapsState(
		&card.FillGapsCard{ID: 20, FolderID: 1, LangID: 2, Text: text, Notes: "card notes"},
		card.Task{ID: 77, CardID: 20, TaskTypeID: 3, FolderID: 1},
	)
}

func TestNewFillGapsState(t *testing.T) {
	state := newTestFillGapsState("abc [[def]] ghi [[jkl|123|456]]")
	assert.True(t, state.Valid)
	assert.Equal(t, 2, state.Gaps.Len())
	assert.Equal(t, []*string{nil, nil}, state.FirstUserInputs)
	assert.Equal(t, []bool{false, false}, state.CorrectEntered)
	assert.Equal(t, 0, state.CurrentGap())

	invalid := newTestFillGapsState("abc [[def")
	assert.False(t, invalid.Valid)
	assert.Equal(t, -1, invalid.CurrentGap())
}

func TestProcessFillGapsInput_AllGaps(t *testing.T) {
	state := newTestFillGapsState("abc [[def]] ghi [[jkl|123|456]]")
	assert.Equal(t, "a - show answer    e - exit    u - update card    s - show statistics\n\n"+
		"\n"+
		"Fill the gap #1:\n\nabc # 1 ghi # 2\n\n\n", render(state))

	// first gap correct on the first try
	state = ProcessFillGapsInput(state, "def")
	assert.Equal(t, IndicatorCorrect, state.Indicator)
	assert.Nil(t, state.HistoryRecord)
	assert.Equal(t, 1, state.CurrentGap())

	// second gap wrong first, then correct
	state = ProcessFillGapsInput(state, "xyz")
	assert.Equal(t, IndicatorWrong, state.Indicator)
	assert.Equal(t, strPtr("xyz"), state.UserInput)
	assert.Nil(t, state.HistoryRecord)
	assert.Equal(t, "a - show answer    e - exit    u - update card    s - show statistics\n\n"+
		"V #1 def\n\n"+
		"Fill the gap #2:\n\nabc def ghi # 2\n\nHint: 123\n\n"+
		"xyz\n\nX\n\n\n", render(state))

	state = ProcessFillGapsInput(state, "jkl")
	require.NotNil(t, state.HistoryRecord)
	assert.Equal(t, &history.Record{TaskID: 77, Mark: 0.5, Note: "exp: def & act: def exp: jkl & act: xyz"}, state.HistoryRecord)
	assert.Equal(t, -1, state.CurrentGap())
	assert.Equal(t, ContinueTask, state.Continuation)

	state = state.ClearRequests().(FillGapsState)
	assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
		"V #1 def\nV #2 jkl\n    456\n\nNotes:\ncard notes\n\n"+
		"All gaps are filled\n\nabc def ghi jkl\n\n"+
		"V\n\n\n(press Enter to go to the next task)", render(state))

	// further text does nothing, Enter moves on
	kept := ProcessFillGapsInput(state, "more")
	assert.Equal(t, ContinueTask, kept.Continuation)
	assert.Nil(t, kept.HistoryRecord)
	state = ProcessFillGapsInput(state, "")
	assert.Equal(t, NextTask, state.Continuation)
	assert.Nil(t, state.HistoryRecord)
}

func TestProcessFillGapsInput_ShowAnswer(t *testing.T) {
	state := newTestFillGapsState("[[one|h1|n1]] and [[two]]")

	state = ProcessFillGapsInput(state, "`a")
	assert.True(t, state.ShowAnswer)
	assert.Equal(t, []*string{strPtr(""), nil}, state.FirstUserInputs)
	assert.Nil(t, state.HistoryRecord)
	assert.Contains(t, render(state), "The answer for the gap #1 is:\n\none\n\nNote: n1\n")
	assert.Contains(t, render(state), "(press Enter to hide the answer)")

	hidden := ProcessFillGapsInput(state, "")
	assert.False(t, hidden.ShowAnswer)
	assert.Equal(t, 0, hidden.CurrentGap())

	state = ProcessFillGapsInput(state, "one")
	assert.False(t, state.ShowAnswer)
	state = ProcessFillGapsInput(state, "two")
	assert.Equal(t, &history.Record{TaskID: 77, Mark: 0.5, Note: "exp: one & act:  exp: two & act: two"}, state.HistoryRecord)
}

func TestProcessFillGapsInput_PerfectMark(t *testing.T) {
	state := newTestFillGapsState("a [[b]] c")
	state = ProcessFillGapsInput(state, "b")
	assert.Equal(t, &history.Record{TaskID: 77, Mark: 1.0, Note: "exp: b & act: b"}, state.HistoryRecord)
}

func TestProcessFillGapsInput_InvalidCard(t *testing.T) {
	state := newTestFillGapsState("no gaps here")
	assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
		"The card is not correctly formatted.\n\n(press Enter to go to the next task)", render(state))

	got := ProcessFillGapsInput(state, "`a")
	assert.Equal(t, `Unknown command "a"`, got.ErrMsg)

	got = ProcessFillGapsInput(state, "anything")
	assert.Equal(t, ContinueTask, got.Continuation)
	assert.Nil(t, got.HistoryRecord)

	got = ProcessFillGapsInput(state, "`u")
	assert.True(t, got.EditCard)

	got = ProcessFillGapsInput(state, "")
	assert.Equal(t, NextTask, got.Continuation)
}

func TestProcessFillGapsInput_DoesNotModifyInput(t *testing.T) {
	initial := newTestFillGapsState("[[one]] [[two]]")

	_ = ProcessFillGapsInput(initial, "`a")
	_ = ProcessFillGapsInput(initial, "one")
	_ = ProcessFillGapsInput(initial, "wrong")

	assert.Equal(t, []*string{nil, nil}, initial.FirstUserInputs)
	assert.Equal(t, []bool{false, false}, initial.CorrectEntered)
	assert.Nil(t, initial.HistoryRecord)
}

func TestNewMachine(t *testing.T) {
	lookup := newTestLookup()

	m, err := NewMachine(lookup, newTestTranslateCard(), card.Task{ID: 1, TaskTypeID: 2})
	require.NoError(t, err)
	assert.IsType(t, TranslateState{}, m)

	m, err = NewMachine(lookup, &card.FillGapsCard{ID: 2, Text: "[[x]]"}, card.Task{ID: 2, TaskTypeID: 3})
	require.NoError(t, err)
	assert.IsType(t, FillGapsState{}, m)
	assert.Equal(t, int64(2), m.State().Task.ID)

	_, err = NewMachine(lookup, &card.FillGapsCard{ID: 2}, card.Task{ID: 3, TaskTypeID: 1})
	assert.Error(t, err)
	_, err = NewMachine(lookup, newTestTranslateCard(), card.Task{ID: 4, TaskTypeID: 3})
	assert.Error(t, err)
	_, err = NewMachine(lookup, newTestTranslateCard(), card.Task{ID: 5, TaskTypeID: 9})
	assert.Error(t, err)
}
