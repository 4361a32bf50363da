// Package storage handles persistence of the quote collection and its search index.
package storage

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/quote"
)

var (
	// ErrDuplicateQuote is returned when inserting text that is already stored.
	ErrDuplicateQuote = errors.New("quote already exists")
	// ErrCorruptStore is returned when the backing file exists but can't be parsed.
	ErrCorruptStore = errors.New("quote store is corrupt")
)

// Predicate selects quotes in Find.
type Predicate func(quote.Quote) bool

// document is the on-disk shape of quotes.json.
type document struct {
	Quotes []quote.Quote `json:"quotes"`
}

// Store owns the in-memory quote collection backed by a single JSON document.
// There is no update or delete: quotes are only ever appended.
type Store struct {
	path   string
	quotes []quote.Quote
	byText map[string]int // quote text -> position in quotes
	dirty  bool
	logger *log.Logger
}

// Open loads the store at path. A missing file yields an empty collection;
// the file is only created on the first Persist.
func Open(path string, logger *log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{
		path:   path,
		byText: make(map[string]int),
		logger: logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no store yet, starting empty", "path", path)
			return s, nil
		}
		return nil, errors.Wrap(err, "reading quote store")
	}

	quotes, err := decode(data)
	if err != nil {
		return nil, errors.Wrapf(errors.Mark(err, ErrCorruptStore), "parsing %s", path)
	}

	for i, q := range quotes {
		q = q.Normalized()
		if err := q.Validate(); err != nil {
			return nil, errors.Wrapf(errors.Mark(err, ErrCorruptStore), "parsing %s: entry %d", path, i+1)
		}
		quotes[i] = q
		if _, dup := s.byText[q.Text]; dup {
			return nil, errors.Wrapf(ErrCorruptStore, "parsing %s: entry %d duplicates %q", path, i+1, q.Text)
		}
		s.byText[q.Text] = i
	}
	s.quotes = quotes

	logger.Debug("loaded quote store", "path", path, "quotes", len(quotes))
	return s, nil
}

// decode accepts either {"quotes": [...]} or a bare array.
func decode(data []byte) ([]quote.Quote, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '[' {
		var quotes []quote.Quote
		if err := json.Unmarshal(data, &quotes); err != nil {
			return nil, err
		}
		return quotes, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Quotes, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of stored quotes.
func (s *Store) Len() int {
	return len(s.quotes)
}

// Dirty reports whether the collection changed since it was loaded or persisted.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Insert appends q if no stored quote has the same text.
// On ErrDuplicateQuote the collection is left unmodified.
func (s *Store) Insert(q quote.Quote) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if _, ok := s.byText[q.Text]; ok {
		return errors.Wrapf(ErrDuplicateQuote, "%q", truncate(q.Text, 60))
	}

	q = clone(q)
	s.byText[q.Text] = len(s.quotes)
	s.quotes = append(s.quotes, q)
	s.dirty = true

	s.logger.Debug("inserted quote", "author", q.Author, "total", len(s.quotes))
	return nil
}

// Find returns copies of all quotes satisfying pred, in insertion order.
func (s *Store) Find(pred Predicate) []quote.Quote {
	var out []quote.Quote
	for _, q := range s.quotes {
		if pred(q) {
			out = append(out, clone(q))
		}
	}
	return out
}

// All returns a copy of every stored quote in insertion order.
func (s *Store) All() []quote.Quote {
	return s.Find(func(quote.Quote) bool { return true })
}

// Get looks a quote up by its exact text.
func (s *Store) Get(text string) (quote.Quote, bool) {
	i, ok := s.byText[text]
	if !ok {
		return quote.Quote{}, false
	}
	return clone(s.quotes[i]), true
}

// clone copies q so callers can't reach the stored tag slice.
func clone(q quote.Quote) quote.Quote {
	q.Tags = append([]string(nil), q.Tags...)
	return q
}

// Persist writes the whole collection back to disk, replacing the file.
// Uses temp file + rename so a failed write never truncates the store.
func (s *Store) Persist() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating store directory")
	}

	quotes := s.quotes
	if quotes == nil {
		quotes = []quote.Quote{}
	}
	data, err := json.MarshalIndent(document{Quotes: quotes}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding quotes")
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(dir, ".tmp-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "writing quotes")
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errors.Wrap(err, "syncing temp file")
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return errors.Wrap(err, "renaming temp file")
	}

	success = true
	s.dirty = false
	s.logger.Debug("persisted quote store", "path", s.path, "quotes", len(s.quotes))
	return nil
}

// Hash returns the SHA256 of the backing file, or of empty input if it doesn't exist.
func (s *Store) Hash() (string, error) {
	return ComputeFileHash(s.path)
}

// ComputeFileHash computes a SHA256 hash of a file's contents.
func ComputeFileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			h := sha256.Sum256([]byte{})
			return hex.EncodeToString(h[:]), nil
		}
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// truncate shortens s to maxLen runes for error messages.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
