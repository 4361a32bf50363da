package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/storage"
)

// ConfigResult is the response for the config command.
type ConfigResult struct {
	Dir          string `json:"dir"`
	Store        string `json:"store"`
	Settings     string `json:"settings"`
	Index        string `json:"index"`
	IndexSynced  string `json:"index_synced,omitempty"`
	Editor       string `json:"editor"`
	Color        string `json:"color"`
	ShowDate     bool   `json:"show_date"`
	DefaultCount int    `json:"default_count"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show resolved paths and settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			editor, err := cfg.EditorCommand()
			if err != nil {
				editor = ""
			}

			res := ConfigResult{
				Dir:          cfg.Dir,
				Store:        cfg.StorePath(),
				Settings:     cfg.SettingsPath(),
				Index:        cfg.IndexPath(),
				Editor:       editor,
				Color:        cfg.Settings.Color,
				ShowDate:     cfg.Settings.ShowDate,
				DefaultCount: cfg.Settings.DefaultCount,
				IndexSynced:  a.indexSynced(),
			}
			if a.jsonOutput {
				return outputJSON(a.out, res)
			}

			if editor == "" {
				editor = "(not set)"
			}
			fmt.Fprintf(a.out, "dir:           %s\n", res.Dir)
			fmt.Fprintf(a.out, "store:         %s\n", res.Store)
			fmt.Fprintf(a.out, "settings:      %s\n", res.Settings)
			fmt.Fprintf(a.out, "index:         %s\n", res.Index)
			synced := res.IndexSynced
			if synced == "" {
				synced = "(never)"
			}
			fmt.Fprintf(a.out, "index synced:  %s\n", synced)
			fmt.Fprintf(a.out, "editor:        %s\n", editor)
			fmt.Fprintf(a.out, "color:         %s\n", res.Color)
			fmt.Fprintf(a.out, "show_date:     %t\n", res.ShowDate)
			fmt.Fprintf(a.out, "default_count: %d\n", res.DefaultCount)
			return nil
		},
	}
}

// indexSynced reports when the search index was last rebuilt, without
// creating the index if it doesn't exist yet.
func (a *app) indexSynced() string {
	path := a.cfg.IndexPath()
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	x, err := storage.OpenIndex(path, a.logger)
	if err != nil {
		a.logger.Warn("could not open search index", "err", err)
		return ""
	}
	defer x.Close()

	last, err := x.LastSync()
	if err != nil || last.IsZero() {
		return ""
	}
	return last.Format(time.RFC3339)
}
