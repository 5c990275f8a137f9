package repeat

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/history"
)

func newTestLookup() *card.Lookup {
	return card.NewLookup(
		map[int64]string{1: "PL", 2: "EN"},
		map[int64]card.TaskTypeCode{1: card.TaskTypeTranslate12, 2: card.TaskTypeTranslate21, 3: card.TaskTypeFillGaps},
	)
}

func newTestTranslateCard() *card.TranslateCard {
	return &card.TranslateCard{
		ID: 10, FolderID: 1,
		Lang1ID: 1, ReadOnly1: true, Text1: "text1", Tran1: "tran1",
		Lang2ID: 2, ReadOnly2: false, Text2: "text2", Tran2: "tran2",
	}
}

func newTestTranslateState(t *testing.T, taskTypeID int64) TranslateState {
	t.Helper()
	state, err := NewTranslateState(newTestLookup(), newTestTranslateCard(), card.Task{ID: 391, CardID: 10, TaskTypeID: taskTypeID, FolderID: 1})
	require.NoError(t, err)
	return state
}

func render(state Machine) string {
	color.NoColor = true
	var buf bytes.Buffer
	state.Render(NewConsole(strings.NewReader(""), &buf))
	return buf.String()
}

func strPtr(s string) *string {
	return &s
}

func TestNewTranslateState(t *testing.T) {
	state := newTestTranslateState(t, 1)
	assert.Equal(t, TranslateSide{Lang: "PL", ReadOnly: true, Text: "text1", Transcription: "tran1"}, state.Src)
	assert.Equal(t, TranslateSide{Lang: "EN", Text: "text2", Transcription: "tran2"}, state.Dst)

	state = newTestTranslateState(t, 2)
	assert.Equal(t, "text2", state.Src.Text)
	assert.Equal(t, "text1", state.Dst.Text)
	assert.True(t, state.Dst.ReadOnly)

	_, err := NewTranslateState(newTestLookup(), newTestTranslateCard(), card.Task{ID: 1, TaskTypeID: 3})
	assert.Error(t, err)
}

func TestProcessTranslateInput_FirstInputIsCorrect(t *testing.T) {
	initial := newTestTranslateState(t, 1)
	assert.Equal(t, "a - show answer    e - exit    u - update card    s - show statistics\n\n"+
		"Write translation to EN for:\n\ntext1\n\n", render(initial))

	state := ProcessTranslateInput(initial, "text2")

	assert.Equal(t, &history.Record{TaskID: 391, Mark: 1.0, Note: "text2"}, state.HistoryRecord)
	assert.Equal(t, ContinueTask, state.Continuation)
	assert.Equal(t, strPtr("text2"), state.FirstUserTranslation)
	assert.Equal(t, strPtr("text2"), state.UserTranslation)
	assert.Equal(t, IndicatorCorrect, state.Indicator)
	assert.True(t, state.CorrectTranslationEntered)

	state = state.ClearRequests().(TranslateState)
	assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
		"Write translation to EN for:\n\ntext1\n\ntext2\n\nV\n\n"+
		"Transcription: tran2\n\n(press Enter to go to the next task)", render(state))

	state = ProcessTranslateInput(state, "")
	assert.Equal(t, NextTask, state.Continuation)
	assert.Nil(t, state.HistoryRecord)
	assert.Nil(t, state.UserTranslation)
}

func TestProcessTranslateInput_SecondInputIsCorrect(t *testing.T) {
	state := ProcessTranslateInput(newTestTranslateState(t, 1), "text3")

	assert.Equal(t, &history.Record{TaskID: 391, Mark: 0.0, Note: "text3"}, state.HistoryRecord)
	assert.Equal(t, IndicatorWrong, state.Indicator)
	assert.False(t, state.CorrectTranslationEntered)

	state = state.ClearRequests().(TranslateState)
	assert.Equal(t, "a - show answer    e - exit    u - update card    s - show statistics\n\n"+
		"Write translation to EN for:\n\ntext1\n\ntext3\n\nX\n\n", render(state))

	state = ProcessTranslateInput(state, "text2")
	assert.Nil(t, state.HistoryRecord)
	assert.Equal(t, strPtr("text3"), state.FirstUserTranslation)
	assert.Equal(t, IndicatorCorrect, state.Indicator)
	assert.True(t, state.CorrectTranslationEntered)

	state = ProcessTranslateInput(state, "")
	assert.Equal(t, NextTask, state.Continuation)
	assert.Nil(t, state.HistoryRecord)
}

func TestProcessTranslateInput_ShowAnswer(t *testing.T) {
	t.Run("before the first input records a miss", func(t *testing.T) {
		state := ProcessTranslateInput(newTestTranslateState(t, 1), "`a")

		assert.True(t, state.ShowAnswer)
		assert.Equal(t, &history.Record{TaskID: 391, Mark: 0.0}, state.HistoryRecord)
		assert.Equal(t, strPtr(""), state.FirstUserTranslation)

		state = state.ClearRequests().(TranslateState)
		assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
			"Write translation to EN for:\n\ntext1\n\n"+
			"Translation:\n\ntext2\n\nTranscription: tran2\n\n(press Enter to hide the answer)", render(state))

		hidden := ProcessTranslateInput(state, "")
		assert.False(t, hidden.ShowAnswer)
		assert.Nil(t, hidden.HistoryRecord)
		assert.Equal(t, ContinueTask, hidden.Continuation)

		// typing the answer while it is shown does not record again
		typed := ProcessTranslateInput(state, "text2")
		assert.False(t, typed.ShowAnswer)
		assert.Nil(t, typed.HistoryRecord)
		assert.True(t, typed.CorrectTranslationEntered)
	})

	t.Run("after an incorrect input does not record again", func(t *testing.T) {
		state := ProcessTranslateInput(newTestTranslateState(t, 1), "text3")
		state = state.ClearRequests().(TranslateState)

		state = ProcessTranslateInput(state, "`a")
		assert.True(t, state.ShowAnswer)
		assert.Nil(t, state.HistoryRecord)
		assert.Nil(t, state.UserTranslation)
		assert.Equal(t, IndicatorNone, state.Indicator)
		assert.Equal(t, strPtr("text3"), state.FirstUserTranslation)
	})

	t.Run("unavailable after the correct answer", func(t *testing.T) {
		state := ProcessTranslateInput(newTestTranslateState(t, 1), "text2")
		state = ProcessTranslateInput(state.ClearRequests().(TranslateState), "`a")
		assert.False(t, state.ShowAnswer)
		assert.Nil(t, state.HistoryRecord)
		assert.Equal(t, `Unknown command "a"`, state.ErrMsg)
	})
}

func TestProcessTranslateInput_ReadOnly(t *testing.T) {
	initial := newTestTranslateState(t, 2)
	assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
		"Recall translation to PL for:\n\ntext2\n\n(press Enter to show the answer)", render(initial))

	revealed := ProcessTranslateInput(initial, "")
	assert.True(t, revealed.EnterMark)
	assert.Nil(t, revealed.HistoryRecord)
	assert.Equal(t, "e - exit    u - update card    s - show statistics\n\n"+
		"Recall translation to PL for:\n\ntext2\n\n"+
		"Translation:\n\ntext1\n\nTranscription: tran1\n\nEnter mark [1]: ", render(revealed))

	tests := []struct {
		name       string
		input      string
		wantRecord *history.Record
		wantErrMsg string
	}{
		{name: "zero", input: "0", wantRecord: &history.Record{TaskID: 391, Mark: 0.0}},
		{name: "empty means one", input: "", wantRecord: &history.Record{TaskID: 391, Mark: 1.0}},
		{name: "fraction", input: " 0.5 ", wantRecord: &history.Record{TaskID: 391, Mark: 0.5}},
		{name: "above one", input: "1.5", wantErrMsg: invalidMarkMessage},
		{name: "negative", input: "-1", wantErrMsg: invalidMarkMessage},
		{name: "not a number", input: "abc", wantErrMsg: invalidMarkMessage},
		{name: "NaN", input: "NaN", wantErrMsg: invalidMarkMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProcessTranslateInput(revealed, tt.input)
			assert.Equal(t, tt.wantRecord, got.HistoryRecord)
			assert.Equal(t, tt.wantErrMsg, got.ErrMsg)
			if tt.wantErrMsg != "" {
				assert.Equal(t, ContinueTask, got.Continuation)
				assert.True(t, got.EnterMark)
				assert.False(t, got.CorrectTranslationEntered)
				return
			}
			assert.Equal(t, NextTask, got.Continuation)
			assert.True(t, got.CorrectTranslationEntered)
		})
	}

	t.Run("show answer is not a command for read only sides", func(t *testing.T) {
		got := ProcessTranslateInput(initial, "`a")
		assert.Equal(t, `Unknown command "a"`, got.ErrMsg)
		assert.Nil(t, got.HistoryRecord)
	})
}

func TestProcessTranslateInput_Commands(t *testing.T) {
	wrong := ProcessTranslateInput(newTestTranslateState(t, 1), "text3").ClearRequests().(TranslateState)

	tests := []struct {
		name  string
		input string
		check func(t *testing.T, got TranslateState)
	}{
		{
			name:  "exit",
			input: "`e",
			check: func(t *testing.T, got TranslateState) {
				assert.Equal(t, Exit, got.Continuation)
			},
		},
		{
			name:  "edit card keeps the screen",
			input: "`u",
			check: func(t *testing.T, got TranslateState) {
				assert.True(t, got.EditCard)
				assert.Equal(t, IndicatorWrong, got.Indicator)
				assert.Equal(t, strPtr("text3"), got.UserTranslation)
			},
		},
		{
			name:  "statistics",
			input: "`s",
			check: func(t *testing.T, got TranslateState) {
				assert.True(t, got.PrintStats)
				assert.Equal(t, ContinueTask, got.Continuation)
			},
		},
		{
			name:  "unknown",
			input: "`x",
			check: func(t *testing.T, got TranslateState) {
				assert.Equal(t, `Unknown command "x"`, got.ErrMsg)
				assert.Nil(t, got.HistoryRecord)
				assert.Contains(t, render(got), `Unknown command "x"`)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ProcessTranslateInput(wrong, tt.input))
		})
	}
}

func TestProcessTranslateInput_EmptyInputIsNotASubmission(t *testing.T) {
	state := ProcessTranslateInput(newTestTranslateState(t, 1), "")
	assert.Nil(t, state.HistoryRecord)
	assert.Nil(t, state.FirstUserTranslation)
	assert.Equal(t, ContinueTask, state.Continuation)
}

func TestProcessTranslateInput_DoesNotModifyInput(t *testing.T) {
	initial := newTestTranslateState(t, 1)
	snapshot := initial

	_ = ProcessTranslateInput(initial, "text3")
	_ = ProcessTranslateInput(initial, "`a")
	assert.Equal(t, snapshot, initial)
}
