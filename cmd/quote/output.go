package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/quote"
)

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string   `json:"error"`
	Hints []string `json:"hints,omitempty"`
	Added *int     `json:"added,omitempty"` // Set when a batch failed partway
}

// AddResult is the response for the add command.
type AddResult struct {
	Added  int           `json:"added"`
	Quotes []quote.Quote `json:"quotes"`
}

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printQuotes writes quotes as panels, or as a JSON array with --json.
// empty is shown instead of nothing when there are no quotes in human mode.
func (a *app) printQuotes(quotes []quote.Quote, empty string) error {
	if a.jsonOutput {
		if quotes == nil {
			quotes = []quote.Quote{}
		}
		return outputJSON(a.out, quotes)
	}
	if len(quotes) == 0 {
		fmt.Fprintln(a.out, empty)
		return nil
	}
	return a.renderer().Print(a.out, quotes)
}

// reportError prints err in the selected output mode and returns the exit code.
func (a *app) reportError(err error) int {
	hints := errors.GetAllHints(err)
	if a.jsonOutput {
		resp := ErrorResponse{Error: err.Error(), Hints: hints}
		var partial *partialAddError
		if errors.As(err, &partial) {
			resp.Added = &partial.added
		}
		outputJSON(a.out, resp)
	} else {
		fmt.Fprintf(a.errOut, "error: %s\n", err)
		for _, h := range hints {
			fmt.Fprintf(a.errOut, "\n%s\n", strings.TrimSpace(h))
		}
	}
	return exitCode(err)
}

// pluralize returns "1 quote" or "N quotes".
func pluralize(n int) string {
	if n == 1 {
		return "1 quote"
	}
	return fmt.Sprintf("%d quotes", n)
}
