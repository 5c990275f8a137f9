package bucket

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/at-ishikawa/remem/internal/duration"
)

// Stats summarizes one bucket at a point in time.
type Stats struct {
	Index   int
	Total   int
	Active  int
	Waiting int
	// TimeToWait is the number of seconds until the first waiting task becomes active.
	// It is only set when no task of the bucket is active.
	TimeToWait int64
}

// ComputeStats counts active and waiting tasks of every bucket at now (unix seconds).
func ComputeStats(buckets [][]TaskWithHistory, desc Description, now int64) []Stats {
	result := make([]Stats, 0, len(buckets))
	for i, bucket := range buckets {
		stats := Stats{Index: i, Total: len(bucket)}
		var delay int64
		if i < desc.Len() {
			delay = desc.Delays[i]
		}
		var minWait int64 = -1
		for _, t := range bucket {
			elapsed := now - t.LastRepeated
			if elapsed >= delay {
				stats.Active++
				continue
			}
			stats.Waiting++
			if wait := delay - elapsed; minWait < 0 || wait < minWait {
				minWait = wait
			}
		}
		if stats.Active == 0 && stats.Waiting > 0 {
			stats.TimeToWait = minWait
		}
		result = append(result, stats)
	}
	return result
}

// PrintStats writes the bucket delays, the pool size and a table of the bucket statistics.
func PrintStats(w io.Writer, stats []Stats, desc Description, totalTasks int) error {
	delays := make([]string, 0, desc.Len())
	for _, d := range desc.Delays {
		delays = append(delays, duration.Format(d))
	}
	if _, err := fmt.Fprintf(w, "Bucket delays: %s\n\nTotal number of tasks: %d\n\n", strings.Join(delays, " "), totalTasks); err != nil {
		return fmt.Errorf("fmt.Fprintf() > %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "BUCKET\tTOTAL\tACTIVE\tWAITING\tTIME_TO_WAIT")
	for _, s := range stats {
		timeToWait := ""
		if s.TimeToWait > 0 {
			timeToWait = duration.Format(s.TimeToWait)
		}
		_, _ = fmt.Fprintf(tw, "#%d\t%d\t%d\t%d\t%s\n", s.Index, s.Total, s.Active, s.Waiting, timeToWait)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("tabwriter.Flush() > %w", err)
	}
	return nil
}
