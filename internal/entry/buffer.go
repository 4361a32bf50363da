package entry

import (
	"bytes"
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	"github.com/matsen/quote/internal/quote"
)

const templateHeader = `# One [[quotes]] table per quote. Only "quote" is required;
# author, reference and tags fall back to defaults when left blank.
# Save and quit to add them. Exit the editor with an error to cancel.

`

// batch is the TOML shape of an edit buffer.
type batch struct {
	Quotes []quote.Quote `toml:"quotes"`
}

// Template returns the initial buffer: one empty [[quotes]] table.
func Template() ([]byte, error) {
	data, err := toml.Marshal(batch{Quotes: []quote.Quote{{Tags: []string{}}}})
	if err != nil {
		return nil, errors.Wrap(err, "encoding template")
	}
	return append([]byte(templateHeader), data...), nil
}

// ParseBatch decodes an edited buffer. Defaults are applied to every entry
// and added dates are stamped with now; entries with empty text are kept in
// place so InsertBatch can stop at them.
func ParseBatch(data []byte, now time.Time) ([]quote.Quote, error) {
	var b batch
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&b); err != nil {
		return nil, errors.Wrap(err, "parsing quote buffer")
	}

	quotes := make([]quote.Quote, 0, len(b.Quotes))
	for _, q := range b.Quotes {
		q.AddedDate = ""
		quotes = append(quotes, q.WithDefaults(now))
	}
	return quotes, nil
}

// Buffer collects quotes by letting the user edit a TOML template.
type Buffer struct {
	Editor *Editor
	// Dir holds the temporary file; empty means os.TempDir().
	Dir    string
	Now    func() time.Time
	Logger *log.Logger
}

// Collect writes the template, runs the editor, and parses the result.
// The temporary file is removed unless parsing fails, in which case it is
// kept and its path is included in the error so the edits aren't lost.
func (b *Buffer) Collect(ctx context.Context) ([]quote.Quote, error) {
	tmpl, err := Template()
	if err != nil {
		return nil, err
	}

	f, err := os.CreateTemp(b.Dir, "quote-*.toml")
	if err != nil {
		return nil, errors.Wrap(err, "creating buffer file")
	}
	path := f.Name()
	if _, err := f.Write(tmpl); err != nil {
		f.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "writing buffer file")
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "closing buffer file")
	}

	if err := b.Editor.Edit(ctx, path); err != nil {
		os.Remove(path)
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		os.Remove(path)
		return nil, errors.Wrap(err, "reading buffer file")
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	quotes, err := ParseBatch(data, now())
	if err != nil {
		if b.Logger != nil {
			b.Logger.Warn("keeping buffer file", "path", path)
		}
		return nil, errors.WithHintf(err, "your edits were kept in %s", path)
	}

	os.Remove(path)
	return quotes, nil
}
