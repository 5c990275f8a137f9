package repeat

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/at-ishikawa/remem/internal/card"
)

// FillGapsState is the state of a fill gaps task. Gaps are filled from left to right.
type FillGapsState struct {
	TaskState
	Card *card.FillGapsCard
	// Valid is false when the text of the card could not be parsed.
	Valid bool
	Gaps  card.Gaps
	// FirstUserInputs holds the first submission per gap, nil until there is one.
	FirstUserInputs []*string
	UserInput       *string
	Indicator       Indicator
	CorrectEntered  []bool
}

// NewFillGapsState creates the initial state. A malformed text gives an invalid state.
func NewFillGapsState(c *card.FillGapsCard, task card.Task) FillGapsState {
	state := FillGapsState{
		TaskState: TaskState{Task: task},
		Card:      c,
	}
	gaps, err := card.ExtractGaps(c.Text)
	if err != nil {
		slog.Warn("fill gaps card is malformed", "card_id", c.ID, "error", err)
		return state
	}
	state.Valid = true
	state.Gaps = gaps
	state.FirstUserInputs = make([]*string, gaps.Len())
	state.CorrectEntered = make([]bool, gaps.Len())
	return state
}

func (s FillGapsState) State() TaskState          { return s.TaskState }
func (s FillGapsState) Next(input string) Machine { return ProcessFillGapsInput(s, input) }
func (s FillGapsState) Render(c *Console)         { RenderFillGaps(c, s) }

func (s FillGapsState) ClearRequests() Machine {
	s.TaskState = s.TaskState.ClearRequests()
	return s
}

// CurrentGap returns the index of the first gap not answered correctly, or -1 when there is none.
func (s FillGapsState) CurrentGap() int {
	if !s.Valid {
		return -1
	}
	return slices.Index(s.CorrectEntered, false)
}

// ProcessFillGapsInput returns the state after the user entered input.
func ProcessFillGapsInput(s FillGapsState, input string) FillGapsState {
	next := s
	next.TaskState = s.TaskState.ClearRequests()
	next.Continuation = ContinueTask
	next.ErrMsg = ""
	current := s.CurrentGap()

	if cmd, ok := parseCommand(input); ok {
		switch {
		case cmd == commandExit:
			next.Continuation = Exit
		case cmd == commandEditCard:
			next.EditCard = true
		case cmd == commandStats:
			next.PrintStats = true
		case cmd == commandShowAnswer && current >= 0:
			if s.FirstUserInputs[current] == nil {
				empty := ""
				next.FirstUserInputs = slices.Clone(s.FirstUserInputs)
				next.FirstUserInputs[current] = &empty
			}
			next.ShowAnswer = true
			next.UserInput = nil
			next.Indicator = IndicatorNone
		default:
			next.ErrMsg = unknownCommand(cmd)
		}
		return next
	}

	if current < 0 {
		if input == "" {
			next.Continuation = NextTask
			next.UserInput = nil
			next.Indicator = IndicatorNone
		}
		return next
	}

	next.ShowAnswer = false
	next.UserInput = nil
	next.Indicator = IndicatorNone
	if input == "" {
		return next
	}

	submitted := input
	if s.FirstUserInputs[current] == nil {
		next.FirstUserInputs = slices.Clone(s.FirstUserInputs)
		next.FirstUserInputs[current] = &submitted
	}
	if input != s.Gaps.Answers[current] {
		next.UserInput = &submitted
		next.Indicator = IndicatorWrong
		return next
	}

	next.CorrectEntered = slices.Clone(s.CorrectEntered)
	next.CorrectEntered[current] = true
	next.Indicator = IndicatorCorrect
	if current == s.Gaps.Len()-1 {
		next.HistoryRecord = next.newRecord(next.mark(), next.note())
	}
	return next
}

// mark is the share of gaps answered correctly on the first try.
func (s FillGapsState) mark() float64 {
	correct := 0
	for i, answer := range s.Gaps.Answers {
		if first := s.FirstUserInputs[i]; first != nil && *first == answer {
			correct++
		}
	}
	return float64(correct) / float64(s.Gaps.Len())
}

func (s FillGapsState) note() string {
	pairs := make([]string, 0, s.Gaps.Len())
	for i, answer := range s.Gaps.Answers {
		actual := ""
		if first := s.FirstUserInputs[i]; first != nil {
			actual = *first
		}
		pairs = append(pairs, fmt.Sprintf("exp: %s & act: %s", answer, actual))
	}
	return strings.Join(pairs, " ")
}

// RenderFillGaps prints the state.
func RenderFillGaps(c *Console, s FillGapsState) {
	current := s.CurrentGap()
	c.Hint(commandsHint(current >= 0 && !s.ShowAnswer))

	if s.Valid {
		c.Println()
		renderFilledGaps(c, s, current)
		c.Println()
		renderGapsQuestion(c, s, current)
		c.Println()
		if s.ShowAnswer && current >= 0 {
			c.Info(fmt.Sprintf("The answer for the gap #%d is:", current+1))
			c.Println()
			c.Println(s.Gaps.Answers[current])
			if note := s.Gaps.Notes[current]; note != "" {
				c.Println()
				c.Println(c.MarkInfo("Note: ") + note)
			}
			c.Println()
		}
		if s.UserInput != nil {
			c.Println(*s.UserInput)
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
	}

	if !s.Valid {
		c.Println()
		c.Error("The card is not correctly formatted.")
	}
	if s.ErrMsg != "" {
		c.Error(s.ErrMsg)
	}
	c.Println()

	switch {
	case current < 0:
		c.Print(c.MarkPrompt("(press Enter to go to the next task)"))
	case s.ShowAnswer:
		c.Print(c.MarkPrompt("(press Enter to hide the answer)"))
	}
}

func renderFilledGaps(c *Console, s FillGapsState, current int) {
	filled := s.Gaps.Len()
	if current >= 0 {
		filled = current
	}
	for i := 0; i < filled; i++ {
		c.Println(fmt.Sprintf("%s #%d %s", c.MarkSuccess("V"), i+1, s.Gaps.Answers[i]))
		if note := s.Gaps.Notes[i]; note != "" {
			c.Println("    " + note)
		}
	}
	if current < 0 && s.Card.Notes != "" {
		c.Println()
		c.Println("Notes:")
		c.Println(s.Card.Notes)
	}
}

func renderGapsQuestion(c *Console, s FillGapsState, current int) {
	if current >= 0 {
		c.Prompt(fmt.Sprintf("Fill the gap #%d:", current+1))
	} else {
		c.Info("All gaps are filled")
	}
	if s.Card.Description != "" {
		c.Println(c.MarkInfo(s.Card.Description))
	}

	parts := make([]string, 0, 2*s.Gaps.Len()+1)
	for i, answer := range s.Gaps.Answers {
		parts = append(parts, s.Gaps.TextParts[i])
		if s.CorrectEntered[i] {
			parts = append(parts, answer)
		} else {
			parts = append(parts, c.MarkGap(fmt.Sprintf("# %d", i+1)))
		}
	}
	parts = append(parts, s.Gaps.TextParts[s.Gaps.Len()])
	c.Println()
	c.Println(strings.TrimSpace(strings.Join(parts, " ")))

	if current >= 0 {
		if hint := s.Gaps.Hints[current]; hint != "" {
			c.Println()
			c.Println(c.MarkInfo("Hint: ") + hint)
		}
	}
}
