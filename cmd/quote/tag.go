package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/query"
)

func newTagCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <tag>",
		Short: "Show quotes with a tag",
		Long: `Show every quote whose tags include <tag>, in the order they were added.
Matching is exact and case-sensitive.

Example:
  quote tag stoic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := strings.TrimSpace(args[0])
			if tag == "" {
				return errors.New("tag must not be empty")
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			return a.printQuotes(s.Find(query.ByTag(tag)), fmt.Sprintf("No quotes tagged %q.", tag))
		},
	}
}
