package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/clipboard"
	"github.com/matsen/quote/internal/query"
	"github.com/matsen/quote/internal/quote"
)

func newRandomCmd(a *app) *cobra.Command {
	var copyText bool

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show one quote at random",
		Long: `Show one quote picked uniformly at random.

Example:
  quote random --copy`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}

			q, err := query.Random(s.All(), a.rng)
			if err != nil {
				return err
			}

			if copyText {
				if err := clipboard.Copy(cmd.Context(), q.Text); err != nil {
					a.logger.Warn("could not copy to clipboard", "err", err)
				} else {
					a.logger.Debug("copied quote to clipboard")
				}
			}
			return a.printQuotes([]quote.Quote{q}, "")
		},
	}

	cmd.Flags().BoolVarP(&copyText, "copy", "c", false, "Also copy the quote text to the clipboard")
	return cmd
}
