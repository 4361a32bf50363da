// Package display renders quotes as styled terminal panels.
package display

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/matsen/quote/internal/quote"
)

const (
	// DefaultWidth is used when the terminal size can't be determined.
	DefaultWidth = 80
	// MinWidth keeps panels readable on very narrow terminals.
	MinWidth = 24
	// frame is the horizontal space taken by the border and padding.
	frame = 4
)

// Renderer turns quotes into bordered panels.
type Renderer struct {
	Width    int    // Total panel width including border
	Color    string // lipgloss color: name, ANSI index or hex
	ShowDate bool
}

// NewRenderer sizes the panel to the terminal attached to out.
func NewRenderer(out io.Writer, color string, showDate bool) *Renderer {
	return &Renderer{
		Width:    TerminalWidth(out),
		Color:    color,
		ShowDate: showDate,
	}
}

// TerminalWidth returns the column count of out if it is a terminal,
// then $COLUMNS, then DefaultWidth.
func TerminalWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	if cols, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && cols > 0 {
		return cols
	}
	return DefaultWidth
}

// Render formats q as a panel: text, blank line, author, reference and
// optionally the added date. Attribution lines are right-aligned.
func (r *Renderer) Render(q quote.Quote) string {
	width := r.Width
	if width < MinWidth {
		width = MinWidth
	}
	inner := width - frame

	color := lipgloss.Color(namedColor(r.Color))
	body := lipgloss.NewStyle().Foreground(color).Width(inner)
	attribution := body.Italic(true).Align(lipgloss.Right)

	lines := []string{
		body.Render(q.Text),
		"",
		attribution.Render(q.Author),
		attribution.Render(q.Reference),
	}
	if r.ShowDate && q.AddedDate != "" {
		lines = append(lines, body.Faint(true).Align(lipgloss.Right).Render(q.AddedDate))
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)

	return panel.Render(strings.Join(lines, "\n"))
}

// Print writes each quote's panel followed by a newline.
func (r *Renderer) Print(w io.Writer, quotes []quote.Quote) error {
	for _, q := range quotes {
		if _, err := fmt.Fprintln(w, r.Render(q)); err != nil {
			return err
		}
	}
	return nil
}

// namedColor maps a few color names to ANSI indexes; anything else is passed through.
func namedColor(c string) string {
	switch strings.ToLower(strings.TrimSpace(c)) {
	case "", "white":
		return "15"
	case "black":
		return "0"
	case "red":
		return "9"
	case "green":
		return "10"
	case "yellow":
		return "11"
	case "blue":
		return "12"
	case "magenta":
		return "13"
	case "cyan":
		return "14"
	case "gray", "grey":
		return "8"
	}
	return c
}
