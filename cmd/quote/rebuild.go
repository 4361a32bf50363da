package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/storage"
)

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status string `json:"status"`
	Quotes int    `json:"quotes"`
}

func newRebuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rebuild the search index from quotes.json",
		Long: `Rebuild the search index from quotes.json.

The index is a disposable cache; search keeps it fresh on its own. Use this
after editing quotes.json by hand if results look wrong.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}

			x, err := storage.OpenIndex(a.cfg.IndexPath(), a.logger)
			if err != nil {
				return dataError(err, "opening search index")
			}
			defer x.Close()

			hash, err := s.Hash()
			if err != nil {
				return dataError(err, "hashing quote store")
			}
			n, err := x.Rebuild(s.All(), hash)
			if err != nil {
				return dataError(err, "rebuilding search index")
			}

			if a.jsonOutput {
				return outputJSON(a.out, RebuildResult{Status: "rebuilt", Quotes: n})
			}
			fmt.Fprintf(a.out, "Indexed %s\n", pluralize(n))
			return nil
		},
	}
}
