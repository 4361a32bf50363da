// Package entry gathers new quotes from interactive prompts or an
// externally edited TOML buffer.
package entry

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/quote"
)

// Prompter asks for one quote field by field.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	Now func() time.Time

	reader *bufio.Reader
}

// NewPrompter creates a prompter reading answers from in and writing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{In: in, Out: out, Now: time.Now}
}

// Prompt asks for quote, author, reference and tags in that order.
// An empty quote aborts with quote.ErrEmptyQuote before the other prompts.
func (p *Prompter) Prompt() (quote.Quote, error) {
	text, err := p.ask("quote")
	if err != nil {
		return quote.Quote{}, err
	}
	if text == "" {
		return quote.Quote{}, quote.ErrEmptyQuote
	}

	author, err := p.ask("author")
	if err != nil {
		return quote.Quote{}, err
	}
	reference, err := p.ask("reference")
	if err != nil {
		return quote.Quote{}, err
	}
	tags, err := p.ask("tags")
	if err != nil {
		return quote.Quote{}, err
	}

	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return quote.New(text, author, reference, quote.ParseTags(tags), now()), nil
}

// ask prints "label: " and reads one trimmed line. EOF counts as an empty answer.
func (p *Prompter) ask(label string) (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}

	fmt.Fprintf(p.Out, "%s: ", label)
	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrapf(err, "reading %s", label)
	}
	return strings.TrimSpace(line), nil
}
