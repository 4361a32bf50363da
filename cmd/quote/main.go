// Package main provides the quote CLI entry point.
package main

import (
	"context"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matsen/quote/internal/config"
	"github.com/matsen/quote/internal/display"
	"github.com/matsen/quote/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	err := newRootCmd(a).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(a.reportError(err))
	}
}

// app carries everything a command handler needs. It is built once in main
// and handed to every command; nothing lives in package-level state.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger *log.Logger

	// Root flags
	jsonOutput bool
	verbose    bool
	home       string

	now func() time.Time
	rng *rand.Rand // nil uses the global source

	cfg   *config.Config
	store *storage.Store
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		logger: log.NewWithOptions(errOut, log.Options{ReportTimestamp: false}),
		now:    time.Now,
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "quote",
		Short: "Collect and recall quotations from the terminal",
		Long: `quote keeps a personal collection of quotations with their author,
reference and tags.

Quotes are stored in a single JSON document (quotes.json) under the data
directory: $QUOTE_HOME, else $XDG_CONFIG_HOME/quote, else ~/.config/quote.
Output is a styled panel per quote, or JSON with --json.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output JSON instead of styled panels")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log debug details to stderr")
	root.PersistentFlags().StringVar(&a.home, "home", "", "Data directory (default $QUOTE_HOME or ~/.config/quote)")

	root.AddCommand(
		newAddCmd(a),
		newListCmd(a),
		newTagCmd(a),
		newAuthorCmd(a),
		newRandomCmd(a),
		newSearchCmd(a),
		newRebuildCmd(a),
		newConfigCmd(a),
	)
	return root
}

// setup resolves configuration. It never touches the quote store.
func (a *app) setup() error {
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(a.home)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Debug("resolved data directory", "dir", cfg.Dir)
	return nil
}

// openStore loads the quote store once per invocation.
func (a *app) openStore() (*storage.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	s, err := storage.Open(a.cfg.StorePath(), a.logger)
	if err != nil {
		return nil, dataError(err, "opening quote store")
	}
	a.store = s
	return s, nil
}

// persist writes the store back if anything changed.
func (a *app) persist() error {
	if a.store == nil || !a.store.Dirty() {
		return nil
	}
	return dataError(a.store.Persist(), "saving quote store")
}

func (a *app) renderer() *display.Renderer {
	return display.NewRenderer(a.out, a.cfg.Settings.Color, a.cfg.Settings.ShowDate)
}
