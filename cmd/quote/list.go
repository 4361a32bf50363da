package main

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/query"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [recent|past] [count]",
		Aliases: []string{"list"},
		Short:   "List the most recent or oldest quotes",
		Long: `List quotes ordered by the date they were added.

  recent  newest first (default)
  past    oldest first

Count defaults to 10 (or default_count in config.yml).

Examples:
  quote ls
  quote ls past
  quote ls recent 3`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(args)
		},
	}
}

func (a *app) runList(args []string) error {
	var orderArg string
	if len(args) > 0 {
		orderArg = args[0]
	}
	order, err := query.ParseOrder(orderArg)
	if err != nil {
		return err
	}

	count := a.cfg.Settings.DefaultCount
	if len(args) > 1 {
		count, err = strconv.Atoi(args[1])
		if err != nil || count <= 0 {
			return errors.Wrapf(query.ErrInvalidCount, "got %q", args[1])
		}
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	quotes, err := query.Ordered(s.Find(query.All()), order, count)
	if err != nil {
		return err
	}
	return a.printQuotes(quotes, "No quotes yet. Add one with 'quote add'.")
}
