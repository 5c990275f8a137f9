package repeat

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/at-ishikawa/remem/internal/card"
)

const invalidMarkMessage = "The mark must be a number between 0 and 1"

// TranslateSide is one language side of a translate card.
type TranslateSide struct {
	Lang          string
	ReadOnly      bool
	Text          string
	Transcription string
}

// TranslateState is the state of a translate task. Src is shown, Dst is asked for.
type TranslateState struct {
	TaskState
	Src TranslateSide
	Dst TranslateSide
	// FirstUserTranslation is nil until the first submission; it is "" after the answer was revealed first.
	FirstUserTranslation      *string
	UserTranslation           *string
	Indicator                 Indicator
	CorrectTranslationEntered bool
	// EnterMark is set once the answer of a read only side is revealed and a mark is expected.
	EnterMark bool
}

// NewTranslateState creates the initial state. The task type decides which side is asked for.
func NewTranslateState(lookup *card.Lookup, c *card.TranslateCard, task card.Task) (TranslateState, error) {
	side1 := TranslateSide{Lang: lookup.LanguageName(c.Lang1ID), ReadOnly: c.ReadOnly1, Text: c.Text1, Transcription: c.Tran1}
	side2 := TranslateSide{Lang: lookup.LanguageName(c.Lang2ID), ReadOnly: c.ReadOnly2, Text: c.Text2, Transcription: c.Tran2}

	code, _ := lookup.TaskTypeCode(task.TaskTypeID)
	state := TranslateState{TaskState: TaskState{Task: task}}
	switch code {
	case card.TaskTypeTranslate12:
		state.Src, state.Dst = side1, side2
	case card.TaskTypeTranslate21:
		state.Src, state.Dst = side2, side1
	default:
		return TranslateState{}, fmt.Errorf("task %d is not a translate task", task.ID)
	}
	return state, nil
}

func (s TranslateState) State() TaskState          { return s.TaskState }
func (s TranslateState) Next(input string) Machine { return ProcessTranslateInput(s, input) }
func (s TranslateState) Render(c *Console)         { RenderTranslate(c, s) }

func (s TranslateState) ClearRequests() Machine {
	s.TaskState = s.TaskState.ClearRequests()
	return s
}

func (s TranslateState) showAnswerAllowed() bool {
	return !s.Dst.ReadOnly && !s.CorrectTranslationEntered
}

// ProcessTranslateInput returns the state after the user entered input.
func ProcessTranslateInput(s TranslateState, input string) TranslateState {
	next := s
	next.TaskState = s.TaskState.ClearRequests()
	next.Continuation = ContinueTask
	next.ErrMsg = ""

	if cmd, ok := parseCommand(input); ok {
		switch cmd {
		case commandExit:
			next.Continuation = Exit
		case commandEditCard:
			next.EditCard = true
		case commandStats:
			next.PrintStats = true
		case commandShowAnswer:
			if !s.showAnswerAllowed() {
				next.ErrMsg = unknownCommand(cmd)
				break
			}
			if s.FirstUserTranslation == nil {
				empty := ""
				next.FirstUserTranslation = &empty
				next.HistoryRecord = s.newRecord(0.0, "")
			}
			next.ShowAnswer = true
			next.UserTranslation = nil
			next.Indicator = IndicatorNone
		default:
			next.ErrMsg = unknownCommand(cmd)
		}
		return next
	}

	if s.Dst.ReadOnly {
		return processMarkInput(next, input)
	}

	if s.CorrectTranslationEntered {
		if input == "" {
			next.Continuation = NextTask
			next.UserTranslation = nil
			next.Indicator = IndicatorNone
		}
		return next
	}

	next.UserTranslation = nil
	next.Indicator = IndicatorNone
	if input == "" {
		next.ShowAnswer = false
		return next
	}

	next.ShowAnswer = false
	submitted := input
	next.UserTranslation = &submitted
	correct := input == s.Dst.Text
	if s.FirstUserTranslation == nil {
		next.FirstUserTranslation = &submitted
		mark := 0.0
		if correct {
			mark = 1.0
		}
		next.HistoryRecord = s.newRecord(mark, input)
	}
	if correct {
		next.Indicator = IndicatorCorrect
		next.CorrectTranslationEntered = true
	} else {
		next.Indicator = IndicatorWrong
	}
	return next
}

// processMarkInput handles a read only destination: the first input reveals the answer, the second one is the mark.
func processMarkInput(next TranslateState, input string) TranslateState {
	if next.CorrectTranslationEntered {
		next.Continuation = NextTask
		return next
	}
	if !next.EnterMark {
		next.EnterMark = true
		return next
	}

	mark := 1.0
	if trimmed := strings.TrimSpace(input); trimmed != "" {
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || parsed < 0 || parsed > 1 {
			next.ErrMsg = invalidMarkMessage
			return next
		}
		mark = parsed
	}

	empty := ""
	next.FirstUserTranslation = &empty
	next.HistoryRecord = next.newRecord(mark, "")
	next.CorrectTranslationEntered = true
	next.Continuation = NextTask
	return next
}

// RenderTranslate prints the state.
func RenderTranslate(c *Console, s TranslateState) {
	c.Hint(commandsHint(s.showAnswerAllowed() && !s.ShowAnswer))
	c.Println()
	if s.Dst.ReadOnly {
		c.Prompt(fmt.Sprintf("Recall translation to %s for:", s.Dst.Lang))
	} else {
		c.Prompt(fmt.Sprintf("Write translation to %s for:", s.Dst.Lang))
	}
	c.Println()
	c.Println(s.Src.Text)
	c.Println()

	if s.UserTranslation != nil {
		c.Println(*s.UserTranslation)
		c.Println()
	}
	switch s.Indicator {
	case IndicatorCorrect:
		c.Success("V")
		c.Println()
	case IndicatorWrong:
		c.Error("X")
		c.Println()
	}

	answerShown := s.ShowAnswer || s.EnterMark
	if answerShown {
		c.Info("Translation:")
		c.Println()
		c.Println(s.Dst.Text)
		c.Println()
	}
	if s.Dst.Transcription != "" && (answerShown || s.CorrectTranslationEntered) {
		c.Println(c.MarkInfo("Transcription: ") + s.Dst.Transcription)
		c.Println()
	}
	if s.ErrMsg != "" {
		c.Error(s.ErrMsg)
		c.Println()
	}

	switch {
	case s.Dst.ReadOnly && s.EnterMark && !s.CorrectTranslationEntered:
		c.Print(c.MarkPrompt("Enter mark [1]: "))
	case s.Dst.ReadOnly && !s.EnterMark:
		c.Print(c.MarkPrompt("(press Enter to show the answer)"))
	case s.CorrectTranslationEntered:
		c.Print(c.MarkPrompt("(press Enter to go to the next task)"))
	case s.ShowAnswer:
		c.Print(c.MarkPrompt("(press Enter to hide the answer)"))
	}
}
