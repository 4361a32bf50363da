package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/quote"
	"github.com/matsen/quote/internal/storage"
)

func newSearchCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across quotes",
		Long: `Search quote text, author, reference and tags, best match first.

The search index lives in cache/quotes.db and is rebuilt automatically
whenever quotes.json changes.

Examples:
  quote search unexamined life
  quote search Knuth --limit 3`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return errors.Newf("--limit must be positive, got %d", limit)
			}
			return a.runSearch(strings.Join(args, " "), limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results")
	return cmd
}

func (a *app) runSearch(query string, limit int) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}

	x, err := storage.OpenIndex(a.cfg.IndexPath(), a.logger)
	if err != nil {
		return dataError(err, "opening search index")
	}
	defer x.Close()

	if _, err := x.Sync(s); err != nil {
		return dataError(err, "syncing search index")
	}

	texts, err := x.Search(query, limit)
	if err != nil {
		return err
	}

	results := make([]quote.Quote, 0, len(texts))
	for _, text := range texts {
		q, ok := s.Get(text)
		if !ok {
			a.logger.Warn("index returned unknown quote, try 'quote rebuild'", "quote", text)
			continue
		}
		results = append(results, q)
	}

	return a.printQuotes(results, fmt.Sprintf("No quotes match %q.", query))
}
