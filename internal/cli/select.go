package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/at-ishikawa/remem/internal/repeat"
)

// ParseIndexes parses a selection like "1 4-8 10" of 1-based option numbers
// into 0-based indexes in input order. Duplicates are dropped.
// nil is returned when any part is malformed or out of 1..n.
func ParseIndexes(input string, n int) []int {
	var result []int
	seen := make(map[int]bool)
	add := func(idx int) {
		if !seen[idx] {
			seen[idx] = true
			result = append(result, idx)
		}
	}

	for _, field := range strings.Fields(input) {
		from, to, isRange := strings.Cut(field, "-")
		start, err := strconv.Atoi(from)
		if err != nil || start < 1 || start > n {
			return nil
		}
		end := start
		if isRange {
			end, err = strconv.Atoi(to)
			if err != nil || end < start || end > n {
				return nil
			}
		}
		for i := start; i <= end; i++ {
			add(i - 1)
		}
	}
	return result
}

func printOptions(c *repeat.Console, options []string) {
	c.Println()
	for i, o := range options {
		c.Println(fmt.Sprintf("%d. %s", i+1, o))
	}
}

// SelectMultiple lists the options and returns the indexes the user chose.
// An empty or invalid answer selects nothing.
func SelectMultiple(c *repeat.Console, options []string) ([]int, error) {
	printOptions(c, options)
	c.Println()
	input, err := c.Ask("Enter numbers, e.g. 1 4-8 10: ")
	if err != nil {
		return nil, err
	}
	return ParseIndexes(input, len(options)), nil
}

// SelectSingle lists the options followed by Cancel and asks until a valid number is entered.
// ok is false when the user cancels.
func SelectSingle(c *repeat.Console, options []string) (idx int, ok bool, err error) {
	for {
		printOptions(c, options)
		c.Println(fmt.Sprintf("%d. Cancel", len(options)+1))

		input, err := c.ReadLine()
		if err != nil {
			return 0, false, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || n < 1 || n > len(options)+1 {
			continue
		}
		if n == len(options)+1 {
			return 0, false, nil
		}
		return n - 1, true, nil
	}
}
