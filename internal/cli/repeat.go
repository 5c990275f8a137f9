package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/at-ishikawa/remem/internal/bucket"
	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/config"
	"github.com/at-ishikawa/remem/internal/duration"
	"github.com/at-ishikawa/remem/internal/history"
	"github.com/at-ishikawa/remem/internal/repeat"
	"github.com/at-ishikawa/remem/internal/session"
)

// RepeatOptions are the selections given on the command line. Empty ones are asked interactively.
type RepeatOptions struct {
	FolderIDs []int64
	TaskTypes []card.TaskTypeCode
	Buckets   string
}

// RepeatCLI prepares a task pool from the user's selections and runs a session over it.
type RepeatCLI struct {
	console *repeat.Console
	cards   card.Repository
	history history.Repository
	cfg     config.RepeatConfig
}

func NewRepeatCLI(console *repeat.Console, cards card.Repository, historyRepository history.Repository, cfg config.RepeatConfig) *RepeatCLI {
	return &RepeatCLI{
		console: console,
		cards:   cards,
		history: historyRepository,
		cfg:     cfg,
	}
}

// Run returns nil without starting a session when the user selects nothing or the input ends.
func (cli *RepeatCLI) Run(ctx context.Context, opts RepeatOptions) error {
	if err := cli.run(ctx, opts); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (cli *RepeatCLI) run(ctx context.Context, opts RepeatOptions) error {
	c := cli.console
	lookup, err := cli.cards.LoadLookup(ctx)
	if err != nil {
		return fmt.Errorf("cards.LoadLookup() > %w", err)
	}

	folderIDs := opts.FolderIDs
	if len(folderIDs) == 0 {
		folders, err := cli.selectFolders(ctx)
		if err != nil {
			return err
		}
		if folders == nil {
			c.Error("No folders found")
			return nil
		}
		if len(folders) == 0 {
			return nil
		}
		c.Info("\nSelected folders:")
		for _, f := range folders {
			folderIDs = append(folderIDs, f.ID)
			c.Println(f.Path)
		}
		c.Println()
	}

	filters, err := cli.selectTaskTypes(ctx, lookup, folderIDs, opts.TaskTypes)
	if err != nil {
		return err
	}
	if len(filters) == 0 {
		return nil
	}

	taskIDs, err := cli.cards.LoadTaskPool(ctx, folderIDs, filters)
	if err != nil {
		return fmt.Errorf("cards.LoadTaskPool() > %w", err)
	}
	c.Println(c.MarkInfo("Number of loaded tasks: ") + fmt.Sprint(len(taskIDs)))
	c.Println()

	desc, ok, err := cli.selectBuckets(opts.Buckets)
	if err != nil || !ok {
		return err
	}

	breakSeconds, err := duration.Parse(cli.cfg.BreakReminderInterval)
	if err != nil {
		return fmt.Errorf("duration.Parse(%s) > %w", cli.cfg.BreakReminderInterval, err)
	}
	s := session.New(session.Config{
		Console:               c,
		Cards:                 cli.cards,
		History:               cli.history,
		Scheduler:             bucket.NewScheduler(cli.history, cli.cards, bucket.NewPolicy(cli.cfg.FrontSlice, cli.cfg.UseWeights), nil),
		Editor:                NewCardInfoEditor(c, cli.cards, lookup),
		Lookup:                lookup,
		TaskIDs:               taskIDs,
		Buckets:               desc,
		BreakReminderInterval: time.Duration(breakSeconds) * time.Second,
	})
	return s.Run(ctx)
}

// selectFolders returns nil when no folder matches the entered name.
func (cli *RepeatCLI) selectFolders(ctx context.Context) ([]card.FolderWithPath, error) {
	all, err := cli.cards.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("cards.ListFolders() > %w", err)
	}
	pattern, err := cli.console.Ask("Folder name: ")
	if err != nil {
		return nil, err
	}
	pattern = strings.ToLower(strings.TrimSpace(pattern))

	var matching []card.FolderWithPath
	for _, f := range all {
		if strings.Contains(strings.ToLower(f.Path), pattern) {
			matching = append(matching, f)
		}
	}
	if len(matching) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(matching))
	for _, f := range matching {
		paths = append(paths, f.Path)
	}
	idxs, err := SelectMultiple(cli.console, paths)
	if err != nil {
		return nil, err
	}
	selected := make([]card.FolderWithPath, 0, len(idxs))
	for _, i := range idxs {
		selected = append(selected, matching[i])
	}
	return selected, nil
}

// selectTaskTypes keeps the available task types whose codes are given, or asks the user when none are.
func (cli *RepeatCLI) selectTaskTypes(ctx context.Context, lookup *card.Lookup, folderIDs []int64, codes []card.TaskTypeCode) ([]card.TaskTypeFilter, error) {
	c := cli.console
	available, err := cli.cards.ListTaskTypes(ctx, folderIDs)
	if err != nil {
		return nil, fmt.Errorf("cards.ListTaskTypes() > %w", err)
	}
	if len(available) == 0 {
		c.Error("No tasks found in the specified folders")
		return nil, nil
	}
	sort.SliceStable(available, func(i, j int) bool {
		return lookup.Describe(available[i]) < lookup.Describe(available[j])
	})

	if len(codes) > 0 {
		var selected []card.TaskTypeFilter
		for _, f := range available {
			code, ok := lookup.TaskTypeCode(f.TaskTypeID)
			if ok && slices.Contains(codes, code) {
				selected = append(selected, f)
			}
		}
		if len(selected) == 0 {
			c.Error("No tasks of the specified task types found")
		}
		return selected, nil
	}

	descriptions := make([]string, 0, len(available))
	for _, f := range available {
		descriptions = append(descriptions, lookup.Describe(f))
	}
	c.Prompt("Select task types:")
	idxs, err := SelectMultiple(c, descriptions)
	if err != nil {
		return nil, err
	}
	if len(idxs) == 0 {
		return nil, nil
	}

	selected := make([]card.TaskTypeFilter, 0, len(idxs))
	c.Info("\nSelected task types:")
	for _, i := range idxs {
		selected = append(selected, available[i])
		c.Println(descriptions[i])
	}
	c.Println()
	return selected, nil
}

// selectBuckets resolves a configured bucket description by name, or asks for one.
func (cli *RepeatCLI) selectBuckets(name string) (bucket.Description, bool, error) {
	if name != "" {
		value, ok := cli.cfg.Buckets[name]
		if !ok {
			return bucket.Description{}, false, fmt.Errorf("unknown buckets %q, configured ones are %s", name, strings.Join(cli.cfg.BucketNames(), ", "))
		}
		desc, err := bucket.ParseDescription(value)
		if err != nil {
			return bucket.Description{}, false, fmt.Errorf("bucket.ParseDescription(%s) > %w", value, err)
		}
		return desc, true, nil
	}

	names := cli.cfg.BucketNames()
	options := make([]string, 0, len(names))
	for _, n := range names {
		options = append(options, fmt.Sprintf("buckets: %s %s", n, cli.cfg.Buckets[n]))
	}
	cli.console.Prompt("Select strategy:")
	idx, ok, err := SelectSingle(cli.console, options)
	if err != nil || !ok {
		return bucket.Description{}, false, err
	}
	return cli.selectBuckets(names[idx])
}
