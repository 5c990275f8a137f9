package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/at-ishikawa/remem/internal/bucket"
	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/config"
	"github.com/at-ishikawa/remem/internal/duration"
)

// RunStats prints the bucket statistics of every task in the folders.
func RunStats(ctx context.Context, w io.Writer, cards card.Repository, scheduler *bucket.Scheduler, folderIDs []int64, desc bucket.Description) error {
	filters, err := cards.ListTaskTypes(ctx, folderIDs)
	if err != nil {
		return fmt.Errorf("cards.ListTaskTypes() > %w", err)
	}
	var taskIDs []int64
	if len(filters) > 0 {
		taskIDs, err = cards.LoadTaskPool(ctx, folderIDs, filters)
		if err != nil {
			return fmt.Errorf("cards.LoadTaskPool() > %w", err)
		}
	}

	buckets, err := scheduler.LoadBuckets(ctx, taskIDs, desc.Len())
	if err != nil {
		return fmt.Errorf("scheduler.LoadBuckets() > %w", err)
	}
	stats := bucket.ComputeStats(buckets, desc, time.Now().Unix())
	return bucket.PrintStats(w, stats, desc, len(taskIDs))
}

// PrintBuckets lists the configured bucket descriptions.
func PrintBuckets(w io.Writer, cfg config.RepeatConfig) error {
	writer := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tDELAYS\tWEIGHTS")
	for _, name := range cfg.BucketNames() {
		desc, err := bucket.ParseDescription(cfg.Buckets[name])
		if err != nil {
			return fmt.Errorf("bucket.ParseDescription(%s) > %w", cfg.Buckets[name], err)
		}
		delays := make([]string, 0, desc.Len())
		weights := make([]string, 0, desc.Len())
		for i, d := range desc.Delays {
			delays = append(delays, duration.Format(d))
			weights = append(weights, strconv.Itoa(desc.Weights[i]))
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", name, strings.Join(delays, " "), strings.Join(weights, " "))
	}
	return writer.Flush()
}
