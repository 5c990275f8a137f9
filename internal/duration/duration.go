// Package duration converts between compact duration strings such as "2m" or "1d" and seconds.
package duration

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid duration")

var durationPattern = regexp.MustCompile(`^(\d+)([smhd])$`)

type unit struct {
	suffix  string
	seconds int64
}

// units are ordered from the largest to the smallest.
var units = []unit{
	{suffix: "d", seconds: 24 * 60 * 60},
	{suffix: "h", seconds: 60 * 60},
	{suffix: "m", seconds: 60},
	{suffix: "s", seconds: 1},
}

// Parse converts a duration string like "29s", "16m", "32h" or "7d" to seconds.
func Parse(s string) (int64, error) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidDuration, s, err)
	}
	for _, u := range units {
		if u.suffix == m[2] {
			if n > math.MaxInt64/u.seconds {
				return 0, fmt.Errorf("%w: %q is too long", ErrInvalidDuration, s)
			}
			return n * u.seconds, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
}

// Format renders seconds using the two most significant units, e.g. 68 -> "1m8s", 8h13m49s -> "8h13m".
// A zero second unit is omitted, so 3600 -> "1h".
func Format(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	for i, u := range units {
		if seconds < u.seconds {
			continue
		}
		res := strconv.FormatInt(seconds/u.seconds, 10) + u.suffix
		if i+1 < len(units) {
			next := units[i+1]
			if rest := (seconds % u.seconds) / next.seconds; rest > 0 {
				res += strconv.FormatInt(rest, 10) + next.suffix
			}
		}
		return res
	}
	return "0s"
}
