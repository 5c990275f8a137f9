package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/at-ishikawa/remem/internal/card"
	"github.com/at-ishikawa/remem/internal/repeat"
)

// CardInfoEditor shows the card of a task instead of editing it.
type CardInfoEditor struct {
	console *repeat.Console
	cards   card.Repository
	lookup  *card.Lookup
}

func NewCardInfoEditor(console *repeat.Console, cards card.Repository, lookup *card.Lookup) *CardInfoEditor {
	return &CardInfoEditor{
		console: console,
		cards:   cards,
		lookup:  lookup,
	}
}

// EditCard prints the fields of the card and waits for Enter.
func (e *CardInfoEditor) EditCard(ctx context.Context, task card.Task) error {
	c, err := e.cards.FindCard(ctx, task.CardID)
	if err != nil {
		return fmt.Errorf("cards.FindCard(%d) > %w", task.CardID, err)
	}

	e.console.ClearScreen()
	e.console.Info("Card info:")
	e.console.Println()
	writer := tabwriter.NewWriter(e.console.Writer(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(writer, "Task\t%d\n", task.ID)
	fmt.Fprintf(writer, "Card\t%d\n", c.CardID())
	switch c := c.(type) {
	case *card.TranslateCard:
		fmt.Fprintf(writer, "Folder\t%d\n", c.FolderID)
		fmt.Fprintf(writer, "%s\t%s\n", e.lookup.LanguageName(c.Lang1ID), c.Text1)
		if c.Tran1 != "" {
			fmt.Fprintf(writer, "Transcription\t%s\n", c.Tran1)
		}
		fmt.Fprintf(writer, "%s\t%s\n", e.lookup.LanguageName(c.Lang2ID), c.Text2)
		if c.Tran2 != "" {
			fmt.Fprintf(writer, "Transcription\t%s\n", c.Tran2)
		}
		if c.Notes != "" {
			fmt.Fprintf(writer, "Notes\t%s\n", c.Notes)
		}
	case *card.FillGapsCard:
		fmt.Fprintf(writer, "Folder\t%d\n", c.FolderID)
		fmt.Fprintf(writer, "Language\t%s\n", e.lookup.LanguageName(c.LangID))
		if c.Description != "" {
			fmt.Fprintf(writer, "Description\t%s\n", c.Description)
		}
		fmt.Fprintf(writer, "Text\t%s\n", c.Text)
		if c.Notes != "" {
			fmt.Fprintf(writer, "Notes\t%s\n", c.Notes)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writer.Flush() > %w", err)
	}
	e.console.Println()
	e.console.Hint("Editing cards is not supported here")
	_, err = e.console.Ask("Press Enter to continue")
	return err
}
