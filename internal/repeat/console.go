// Package repeat implements the grading state machines of single tasks.
package repeat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Console reads user input line by line and writes colored output.
type Console struct {
	reader      *bufio.Reader
	writer      io.Writer
	clearScreen bool

	hint    *color.Color
	prompt  *color.Color
	info    *color.Color
	success *color.Color
	failure *color.Color
	gap     *color.Color
}

// NewConsole creates a console over r and w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{
		reader:  bufio.NewReader(r),
		writer:  w,
		hint:    color.New(color.FgBlue),
		prompt:  color.New(color.FgYellow),
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
		gap:     color.RGB(255, 109, 10),
	}
}

// NewTerminalConsole creates a console over the standard streams which clears the screen between tasks.
func NewTerminalConsole() *Console {
	c := NewConsole(os.Stdin, os.Stdout)
	c.clearScreen = !color.NoColor
	return c
}

// Writer returns the underlying writer.
func (c *Console) Writer() io.Writer {
	return c.writer
}

// ReadLine returns the next line without its line ending.
// io.EOF is returned only when the input ends before any character of the line.
func (c *Console) ReadLine() (string, error) {
	line, err := c.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ClearScreen clears a terminal. It does nothing for other writers.
func (c *Console) ClearScreen() {
	if c.clearScreen {
		_, _ = fmt.Fprint(c.writer, "\033[H\033[2J")
	}
}

func (c *Console) Println(a ...any) {
	_, _ = fmt.Fprintln(c.writer, a...)
}

func (c *Console) Print(a ...any) {
	_, _ = fmt.Fprint(c.writer, a...)
}

func (c *Console) Hint(text string)    { c.Println(c.hint.Sprint(text)) }
func (c *Console) Prompt(text string)  { c.Println(c.prompt.Sprint(text)) }
func (c *Console) Info(text string)    { c.Println(c.info.Sprint(text)) }
func (c *Console) Success(text string) { c.Println(c.success.Sprint(text)) }
func (c *Console) Error(text string)   { c.Println(c.failure.Sprint(text)) }

func (c *Console) MarkHint(text string) string    { return c.hint.Sprint(text) }
func (c *Console) MarkPrompt(text string) string  { return c.prompt.Sprint(text) }
func (c *Console) MarkInfo(text string) string    { return c.info.Sprint(text) }
func (c *Console) MarkSuccess(text string) string { return c.success.Sprint(text) }
func (c *Console) MarkError(text string) string   { return c.failure.Sprint(text) }
func (c *Console) MarkGap(text string) string     { return c.gap.Sprint(text) }

// Ask prints a prompt without a line break and reads the answer.
func (c *Console) Ask(prompt string) (string, error) {
	c.Print(c.MarkPrompt(prompt))
	return c.ReadLine()
}
