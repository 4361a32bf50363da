package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/query"
)

func newAuthorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "author <name>",
		Short: "Show quotes by an author",
		Long: `Show every quote attributed to exactly <name>, in the order they were added.

Examples:
  quote author "Marcus Aurelius"
  quote author anonymous`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return errors.New("author must not be empty")
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			return a.printQuotes(s.Find(query.ByAuthor(name)), fmt.Sprintf("No quotes by %q.", name))
		},
	}
}
