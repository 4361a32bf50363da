package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/entry"
	"github.com/matsen/quote/internal/quote"
)

func newAddCmd(a *app) *cobra.Command {
	var edit bool

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"new"},
		Short:   "Add quotes by prompt or in your editor",
		Long: `Add a quote interactively, or several at once in your editor.

Without flags, prompts for quote, author, reference and tags (comma separated).
Only the quote is required; author defaults to "anonymous", reference to
"unknown" and tags to "default".

With --edit, opens $EDITOR (or "editor" from config.yml) on a TOML buffer with
one [[quotes]] table per quote. Quotes are added in order; an empty quote or a
duplicate stops the batch, keeping the quotes added before it.

Examples:
  quote add
  quote new --edit
  EDITOR="code --wait" quote add -e`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if edit {
				return a.runAddBuffer(cmd.Context())
			}
			return a.runAddPrompt()
		},
	}

	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Write quotes in your editor as TOML")
	return cmd
}

func (a *app) runAddPrompt() error {
	s, err := a.openStore()
	if err != nil {
		return err
	}

	p := entry.NewPrompter(a.in, a.errOut)
	p.Now = a.now
	q, err := p.Prompt()
	if err != nil {
		return err
	}

	if err := s.Insert(q); err != nil {
		return err
	}
	if err := a.persist(); err != nil {
		return err
	}
	return a.reportAdded([]quote.Quote{q})
}

func (a *app) runAddBuffer(ctx context.Context) error {
	editor, err := a.cfg.EditorCommand()
	if err != nil {
		return err
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	buf := &entry.Buffer{
		Editor: &entry.Editor{
			Command: editor,
			Stdin:   a.in,
			Stdout:  a.out,
			Stderr:  a.errOut,
			Logger:  a.logger,
		},
		Now:    a.now,
		Logger: a.logger,
	}
	quotes, err := buf.Collect(ctx)
	if err != nil {
		return err
	}

	n, batchErr := entry.InsertBatch(s, quotes)
	if err := a.persist(); err != nil {
		return err
	}
	// A partial batch is reported before the error in human mode; JSON
	// output gets a single error object carrying the count instead.
	if batchErr == nil || (n > 0 && !a.jsonOutput) {
		if err := a.reportAdded(quotes[:n]); err != nil {
			return err
		}
	}
	if batchErr != nil {
		return &partialAddError{added: n, err: batchErr}
	}
	return nil
}

// partialAddError records how many quotes of a failed batch were saved.
type partialAddError struct {
	added int
	err   error
}

func (e *partialAddError) Error() string { return e.err.Error() }
func (e *partialAddError) Unwrap() error { return e.err }

func (a *app) reportAdded(added []quote.Quote) error {
	if a.jsonOutput {
		return outputJSON(a.out, AddResult{Added: len(added), Quotes: added})
	}
	fmt.Fprintf(a.out, "Added %s\n", pluralize(len(added)))
	return nil
}
