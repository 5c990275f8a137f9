package card

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidGaps is returned for a fill gaps text without gaps or with a malformed gap.
var ErrInvalidGaps = errors.New("invalid gaps")

const (
	gapOpen  = "[["
	gapClose = "]]"
)

// Gaps is a fill gaps text split into its parts.
// TextParts has one more element than Answers; gap i sits between TextParts[i] and TextParts[i+1].
type Gaps struct {
	TextParts []string
	Answers   []string
	Hints     []string
	Notes     []string
}

// Len returns the number of gaps.
func (g Gaps) Len() int {
	return len(g.Answers)
}

// ExtractGaps parses a text such as "abc [[def]] ghi [[jkl|hint|note]]".
func ExtractGaps(text string) (Gaps, error) {
	var gaps Gaps
	rest := text
	for {
		start := strings.Index(rest, gapOpen)
		if start < 0 {
			break
		}
		if strings.Contains(rest[:start], gapClose) {
			return Gaps{}, fmt.Errorf("%w: %q outside of a gap in %q", ErrInvalidGaps, gapClose, text)
		}
		end := strings.Index(rest[start+len(gapOpen):], gapClose)
		if end < 0 {
			return Gaps{}, fmt.Errorf("%w: unclosed %q in %q", ErrInvalidGaps, gapOpen, text)
		}
		end += start + len(gapOpen)

		body := rest[start+len(gapOpen) : end]
		if strings.Contains(body, gapOpen) {
			return Gaps{}, fmt.Errorf("%w: nested %q in %q", ErrInvalidGaps, gapOpen, text)
		}
		fields := strings.SplitN(body, "|", 3)
		answer := strings.TrimSpace(fields[0])
		if answer == "" {
			return Gaps{}, fmt.Errorf("%w: empty answer in %q", ErrInvalidGaps, text)
		}
		var hint, note string
		if len(fields) > 1 {
			hint = strings.TrimSpace(fields[1])
		}
		if len(fields) > 2 {
			note = strings.TrimSpace(fields[2])
		}

		gaps.TextParts = append(gaps.TextParts, strings.TrimSpace(rest[:start]))
		gaps.Answers = append(gaps.Answers, answer)
		gaps.Hints = append(gaps.Hints, hint)
		gaps.Notes = append(gaps.Notes, note)
		rest = rest[end+len(gapClose):]
	}
	if strings.Contains(rest, gapClose) {
		return Gaps{}, fmt.Errorf("%w: %q outside of a gap in %q", ErrInvalidGaps, gapClose, text)
	}
	if gaps.Len() == 0 {
		return Gaps{}, fmt.Errorf("%w: no gaps in %q", ErrInvalidGaps, text)
	}
	gaps.TextParts = append(gaps.TextParts, strings.TrimSpace(rest))
	return gaps, nil
}
