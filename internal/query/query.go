// Package query filters and orders quotes loaded from the store.
package query

import (
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/matsen/quote/internal/quote"
	"github.com/matsen/quote/internal/storage"
)

// Order selects the direction of an ordered listing.
type Order string

const (
	// Recent lists newest quotes first.
	Recent Order = "recent"
	// Past lists oldest quotes first.
	Past Order = "past"
)

// ValidOrders lists the accepted order keywords.
var ValidOrders = []Order{Recent, Past}

var (
	// ErrInvalidOrder is returned for an order keyword other than recent or past.
	ErrInvalidOrder = errors.New("invalid order")
	// ErrInvalidCount is returned when a listing limit is not positive.
	ErrInvalidCount = errors.New("count must be a positive integer")
	// ErrEmpty is returned by Random when there is nothing to pick from.
	ErrEmpty = errors.New("no quotes stored yet")
)

// All matches every quote.
func All() storage.Predicate {
	return func(quote.Quote) bool { return true }
}

// ByTag matches quotes whose tag list contains tag exactly.
func ByTag(tag string) storage.Predicate {
	return func(q quote.Quote) bool { return q.HasTag(tag) }
}

// ByAuthor matches quotes whose author equals name exactly.
func ByAuthor(name string) storage.Predicate {
	return func(q quote.Quote) bool { return q.Author == name }
}

// ParseOrder parses an order keyword. Empty input means Recent.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.TrimSpace(s)) {
	case "", Recent:
		return Recent, nil
	case Past:
		return Past, nil
	}
	valid := make([]string, len(ValidOrders))
	for i, o := range ValidOrders {
		valid[i] = string(o)
	}
	return "", errors.Wrapf(ErrInvalidOrder, "%q (valid: %s)", s, strings.Join(valid, ", "))
}

// Ordered sorts quotes by added date and returns at most n of them.
// Recent is newest first, Past is oldest first; both come from the same
// stable sort so ties keep insertion order. The input is not modified.
func Ordered(quotes []quote.Quote, order Order, n int) ([]quote.Quote, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidCount, "got %d", n)
	}

	sorted := make([]quote.Quote, len(quotes))
	copy(sorted, quotes)

	switch order {
	case Recent:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Added().After(sorted[j].Added())
		})
	case Past:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Added().Before(sorted[j].Added())
		})
	default:
		return nil, errors.Wrapf(ErrInvalidOrder, "%q", order)
	}

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// Random picks one quote uniformly. A nil rng uses the global source.
func Random(quotes []quote.Quote, rng *rand.Rand) (quote.Quote, error) {
	if len(quotes) == 0 {
		return quote.Quote{}, ErrEmpty
	}
	var i int
	if rng == nil {
		i = rand.IntN(len(quotes))
	} else {
		i = rng.IntN(len(quotes))
	}
	return quotes[i], nil
}
