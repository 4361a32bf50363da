// Package quote defines the core domain type for stored quotations.
package quote

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Defaults applied to fields left blank at entry time.
const (
	DefaultAuthor    = "anonymous"
	DefaultReference = "unknown"
	DefaultTag       = "default"
)

// TimeLayout is the format of AddedDate.
const TimeLayout = "2006-01-02 15:04:05.000000"

// parseLayouts are tried in order when reading AddedDate back.
// The fractional part is optional so hand-edited stores still sort.
var parseLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02",
}

// ErrEmptyQuote is returned when a quote has no text.
var ErrEmptyQuote = errors.New("quote text is empty")

// Quote is one stored quotation with its attribution metadata.
type Quote struct {
	// Identity (unique across the store)
	Text string `json:"quote" toml:"quote"`

	// Attribution
	Author    string   `json:"author" toml:"author"`
	Reference string   `json:"reference" toml:"reference"` // Book, talk, URL...
	Tags      []string `json:"tags" toml:"tags"`

	// Assigned once on creation, never rewritten
	AddedDate string `json:"added_date" toml:"added_date,omitempty"`
}

// New builds a quote stamped with now, applying defaults to empty fields.
func New(text, author, reference string, tags []string, now time.Time) Quote {
	q := Quote{
		Text:      text,
		Author:    author,
		Reference: reference,
		Tags:      tags,
	}
	return q.WithDefaults(now)
}

// WithDefaults returns a copy of q with whitespace trimmed and blank fields
// filled in. AddedDate is only set when it is empty.
func (q Quote) WithDefaults(now time.Time) Quote {
	q = q.Normalized()
	if strings.TrimSpace(q.AddedDate) == "" {
		q.AddedDate = now.Format(TimeLayout)
	}
	return q
}

// Normalized trims q and fills blank author, reference and tags.
// AddedDate is left untouched.
func (q Quote) Normalized() Quote {
	q.Text = strings.TrimSpace(q.Text)
	q.Author = strings.TrimSpace(q.Author)
	q.Reference = strings.TrimSpace(q.Reference)

	if q.Author == "" {
		q.Author = DefaultAuthor
	}
	if q.Reference == "" {
		q.Reference = DefaultReference
	}
	q.Tags = CleanTags(q.Tags)
	if len(q.Tags) == 0 {
		q.Tags = []string{DefaultTag}
	}
	return q
}

// Validate checks the invariants a quote must satisfy before it is stored.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return ErrEmptyQuote
	}
	return nil
}

// Added parses AddedDate. Unparseable dates yield the zero time.
func (q Quote) Added() time.Time {
	s := strings.TrimSpace(q.AddedDate)
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

// HasTag reports whether tag is one of q's tags (exact match).
func (q Quote) HasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ParseTags splits a comma-separated tag list.
// "a, b ,,c" → ["a", "b", "c"]
func ParseTags(input string) []string {
	return CleanTags(strings.Split(input, ","))
}

// CleanTags trims each tag and drops empty ones, preserving order.
func CleanTags(tags []string) []string {
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}
