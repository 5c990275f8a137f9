// Package bucket implements the bucket based spaced repetition scheduler.
package bucket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/duration"
	"github.com/at-ishikawa/remem/internal/history"
)

// ErrInvalidDescription is returned when a bucket description cannot be parsed.
var ErrInvalidDescription = errors.New("invalid bucket description")

// TaskWithHistory is a task together with its most recent history records.
type TaskWithHistory struct {
	Task card.Task
	// History is ordered most recent first.
	History []history.Record
	// LastRepeated is the unix time of the most recent record, or 0 if the task was never repeated.
	LastRepeated int64
}

// Description holds the per bucket delays and weights.
type Description struct {
	Delays  []int64
	Weights []int
}

// Len returns the number of buckets.
func (d Description) Len() int {
	return len(d.Delays)
}

// Number returns the bucket of a task: the count of consecutive perfect marks
// starting from the most recent record, capped at maxBucket.
func Number(records []history.Record, maxBucket int) int {
	result := 0
	for _, rec := range records {
		if result >= maxBucket {
			break
		}
		if rec.Mark < 1.0 {
			break
		}
		result++
	}
	return result
}

// ParseDescription parses a description such as "2m,3 5m 15m 30m,2".
// Every token is a duration with an optional weight, which defaults to 1.
func ParseDescription(s string) (Description, error) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return Description{}, fmt.Errorf("%w: %q has no buckets", ErrInvalidDescription, s)
	}

	desc := Description{
		Delays:  make([]int64, 0, len(tokens)),
		Weights: make([]int, 0, len(tokens)),
	}
	for _, token := range tokens {
		delayStr, weightStr, hasWeight := strings.Cut(token, ",")
		delay, err := duration.Parse(delayStr)
		if err != nil {
			return Description{}, fmt.Errorf("%w: %q > %w", ErrInvalidDescription, token, err)
		}
		weight := 1
		if hasWeight {
			weight, err = strconv.Atoi(weightStr)
			if err != nil || weight < 1 {
				return Description{}, fmt.Errorf("%w: weight of %q must be a positive integer", ErrInvalidDescription, token)
			}
		}
		desc.Delays = append(desc.Delays, delay)
		desc.Weights = append(desc.Weights, weight)
	}
	return desc, nil
}
