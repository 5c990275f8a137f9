// Package session runs a repetition session over a pool of tasks.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/remem/internal/bucket"
	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/history"
	"github.com/at-ishikawa/remem/internal/repeat"
)

const exitCommand = "`e"

//go:generate mockgen -source=session.go -destination=../mocks/session/mock_session.go -package=mock_session CardEditor

// CardEditor edits the card of a task on the user's request.
type CardEditor interface {
	EditCard(ctx context.Context, task card.Task) error
}

// Config holds the collaborators and settings of a session.
type Config struct {
	Console   *repeat.Console
	Cards     card.Repository
	History   history.Repository
	Scheduler *bucket.Scheduler
	Editor    CardEditor
	Lookup    *card.Lookup
	TaskIDs   []int64
	Buckets   bucket.Description
	// BreakReminderInterval disables the reminder when it is not positive.
	BreakReminderInterval time.Duration
	Now                   func() time.Time
}

// Session repeats rounds of tasks until the user exits.
type Session struct {
	console       *repeat.Console
	cards         card.Repository
	history       history.Repository
	scheduler     *bucket.Scheduler
	editor        CardEditor
	lookup        *card.Lookup
	taskIDs       []int64
	desc          bucket.Description
	breakInterval time.Duration
	now           func() time.Time
	nextBreak     time.Time
}

// New creates a new Session.
func New(cfg Config) *Session {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		console:       cfg.Console,
		cards:         cfg.Cards,
		history:       cfg.History,
		scheduler:     cfg.Scheduler,
		editor:        cfg.Editor,
		lookup:        cfg.Lookup,
		taskIDs:       cfg.TaskIDs,
		desc:          cfg.Buckets,
		breakInterval: cfg.BreakReminderInterval,
		now:           now,
	}
}

// Run shows the statistics and then repeats tasks round by round.
// It returns nil when the user exits or the input ends.
func (s *Session) Run(ctx context.Context) error {
	err := s.run(ctx)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Session) run(ctx context.Context) error {
	s.nextBreak = s.now().Add(s.breakInterval)

	s.console.ClearScreen()
	if proceed, err := s.showStats(ctx); err != nil || !proceed {
		return err
	}

	round, err := s.scheduler.NextRound(ctx, s.taskIDs, s.desc)
	if err != nil {
		return fmt.Errorf("scheduler.NextRound() > %w", err)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.remindAboutBreak(); err != nil {
			return err
		}

		if len(round) == 0 {
			round, err = s.scheduler.NextRound(ctx, s.taskIDs, s.desc)
			if err != nil {
				return fmt.Errorf("scheduler.NextRound() > %w", err)
			}
			slog.Debug("computed a new round", "tasks", len(round))
			if len(round) == 0 {
				s.console.ClearScreen()
				if proceed, err := s.showStats(ctx); err != nil || !proceed {
					return err
				}
				continue
			}
		}

		task := round[0].Task
		round = round[1:]
		continuation, err := s.repeatTask(ctx, task)
		if err != nil {
			return err
		}
		if continuation == repeat.Exit {
			return nil
		}
	}
}

func (s *Session) remindAboutBreak() error {
	if s.breakInterval <= 0 || s.now().Before(s.nextBreak) {
		return nil
	}
	s.console.ClearScreen()
	if _, err := s.console.Ask("TAKE A BREAK"); err != nil {
		return err
	}
	s.console.ClearScreen()
	s.nextBreak = s.now().Add(s.breakInterval)
	return nil
}

// showStats prints the bucket statistics and reports whether the user wants to continue.
func (s *Session) showStats(ctx context.Context) (bool, error) {
	buckets, err := s.scheduler.LoadBuckets(ctx, s.taskIDs, s.desc.Len())
	if err != nil {
		return false, fmt.Errorf("scheduler.LoadBuckets() > %w", err)
	}
	stats := bucket.ComputeStats(buckets, s.desc, s.now().Unix())
	if err := bucket.PrintStats(s.console.Writer(), stats, s.desc, len(s.taskIDs)); err != nil {
		return false, fmt.Errorf("bucket.PrintStats() > %w", err)
	}
	s.console.Println()
	s.console.Print(s.console.MarkPrompt("Press Enter") + s.console.MarkHint(" (`e - exit)"))

	input, err := s.console.ReadLine()
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(input) != exitCommand, nil
}

// repeatTask runs the state machine of one task until the user moves on or exits.
func (s *Session) repeatTask(ctx context.Context, task card.Task) (repeat.Continuation, error) {
	c, err := s.cards.FindCard(ctx, task.CardID)
	if err != nil {
		return repeat.Exit, fmt.Errorf("cards.FindCard(%d) > %w", task.CardID, err)
	}
	machine, err := repeat.NewMachine(s.lookup, c, task)
	if err != nil {
		return repeat.Exit, fmt.Errorf("repeat.NewMachine() > %w", err)
	}

	for {
		s.console.ClearScreen()
		machine.Render(s.console)
		input, err := s.console.ReadLine()
		if err != nil {
			return repeat.Exit, err
		}

		machine = machine.Next(input)
		state := machine.State()
		if state.HistoryRecord != nil {
			rec := *state.HistoryRecord
			if err := s.history.Append(ctx, &rec); err != nil {
				return repeat.Exit, fmt.Errorf("history.Append() > %w", err)
			}
			slog.Debug("recorded task history", "task_id", rec.TaskID, "mark", rec.Mark)
		}
		if state.EditCard {
			if err := s.editor.EditCard(ctx, task); err != nil {
				return repeat.Exit, fmt.Errorf("editor.EditCard() > %w", err)
			}
		}
		if state.PrintStats {
			s.console.ClearScreen()
			proceed, err := s.showStats(ctx)
			if err != nil {
				return repeat.Exit, err
			}
			if !proceed {
				return repeat.Exit, nil
			}
		}
		machine = machine.ClearRequests()

		if state.Continuation != repeat.ContinueTask {
			return state.Continuation, nil
		}
	}
}
