package entry

import (
	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/quote"
)

// Inserter stores a single quote.
type Inserter interface {
	Insert(q quote.Quote) error
}

// InsertBatch inserts quotes in order and stops at the first failure.
// Quotes inserted before the failure stay inserted; the returned count says how many.
func InsertBatch(dst Inserter, quotes []quote.Quote) (int, error) {
	inserted := 0
	for i, q := range quotes {
		if err := q.Validate(); err != nil {
			return inserted, errors.Wrapf(err, "entry %d", i+1)
		}
		if err := dst.Insert(q); err != nil {
			return inserted, errors.Wrapf(err, "entry %d", i+1)
		}
		inserted++
	}
	return inserted, nil
}
