package query

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matsen/quote/internal/quote"
	"github.com/matsen/quote/internal/storage"
)

var baseTime = time.Date(2026, 5, 1, 12, 0, 0, 0, time.Local)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "quotes.json"), nil)
	require.NoError(t, err)
	return s
}

func texts(quotes []quote.Quote) []string {
	out := make([]string, len(quotes))
	for i, q := range quotes {
		out[i] = q.Text
	}
	return out
}

func TestByTag_DefaultTagApplied(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Insert(quote.New("untagged", "", "", nil, baseTime)))
	require.NoError(t, s.Insert(quote.New("tagged", "", "", []string{"other"}, baseTime)))

	got := s.Find(ByTag(quote.DefaultTag))
	assert.Equal(t, []string{"untagged"}, texts(got))
}

func TestByTag_ExactCaseSensitive(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Insert(quote.New("a", "", "", []string{"Stoic"}, baseTime)))
	require.NoError(t, s.Insert(quote.New("b", "", "", []string{"stoic", "life"}, baseTime)))
	require.NoError(t, s.Insert(quote.New("c", "", "", []string{"stoicism"}, baseTime)))

	assert.Equal(t, []string{"b"}, texts(s.Find(ByTag("stoic"))))
	assert.Equal(t, []string{"a"}, texts(s.Find(ByTag("Stoic"))))
	assert.Empty(t, s.Find(ByTag("sto")))
}

func TestByAuthor(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Insert(quote.New("a", "Seneca", "", nil, baseTime)))
	require.NoError(t, s.Insert(quote.New("b", "seneca", "", nil, baseTime)))
	require.NoError(t, s.Insert(quote.New("c", "Seneca", "", nil, baseTime)))
	require.NoError(t, s.Insert(quote.New("d", "", "", nil, baseTime)))

	assert.Equal(t, []string{"a", "c"}, texts(s.Find(ByAuthor("Seneca"))))
	assert.Equal(t, []string{"d"}, texts(s.Find(ByAuthor(quote.DefaultAuthor))))
	assert.Empty(t, s.Find(ByAuthor("Sen")))
}

func TestAll(t *testing.T) {
	s := newStore(t)
	for _, text := range []string{"z", "y", "x"} {
		require.NoError(t, s.Insert(quote.New(text, "", "", nil, baseTime)))
	}
	assert.Equal(t, []string{"z", "y", "x"}, texts(s.Find(All())))
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		input   string
		want    Order
		wantErr bool
	}{
		{"recent", Recent, false},
		{"past", Past, false},
		{"", Recent, false},
		{" past ", Past, false},
		{"first", "", true},
		{"Recent", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOrder(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrder_ErrorListsValidOrders(t *testing.T) {
	_, err := ParseOrder("sideways")
	require.Error(t, err)
	for _, o := range ValidOrders {
		assert.Contains(t, err.Error(), string(o))
	}
}

// fifteen returns quotes inserted in a shuffled order so insertion order
// and timestamp order disagree.
func fifteen() []quote.Quote {
	perm := []int{7, 2, 14, 0, 9, 4, 11, 1, 13, 6, 3, 12, 8, 5, 10}
	quotes := make([]quote.Quote, 0, len(perm))
	for _, minute := range perm {
		added := baseTime.Add(time.Duration(minute) * time.Minute)
		quotes = append(quotes, quote.New(fmt.Sprintf("q%02d", minute), "", "", nil, added))
	}
	return quotes
}

func TestOrdered_Recent(t *testing.T) {
	got, err := Ordered(fifteen(), Recent, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"q14", "q13", "q12", "q11", "q10"}, texts(got))
}

func TestOrdered_Past(t *testing.T) {
	got, err := Ordered(fifteen(), Past, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"q00", "q01", "q02"}, texts(got))
}

func TestOrdered_CountLargerThanCollection(t *testing.T) {
	got, err := Ordered(fifteen(), Recent, 100)
	require.NoError(t, err)
	assert.Len(t, got, 15)
}

func TestOrdered_DoesNotMutateInput(t *testing.T) {
	in := fifteen()
	before := texts(in)
	_, err := Ordered(in, Recent, 5)
	require.NoError(t, err)
	assert.Equal(t, before, texts(in))
}

func TestOrdered_TiesKeepInsertionOrder(t *testing.T) {
	in := []quote.Quote{
		quote.New("first", "", "", nil, baseTime),
		quote.New("second", "", "", nil, baseTime),
		quote.New("third", "", "", nil, baseTime),
	}
	recent, err := Ordered(in, Recent, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, texts(recent))

	past, err := Ordered(in, Past, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, texts(past))
}

func TestOrdered_Errors(t *testing.T) {
	_, err := Ordered(fifteen(), Recent, 0)
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Ordered(fifteen(), Order("sideways"), 5)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestRandom_SingleQuote(t *testing.T) {
	only := []quote.Quote{quote.New("only one", "", "", nil, baseTime)}
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 20; i++ {
		got, err := Random(only, rng)
		require.NoError(t, err)
		assert.Equal(t, "only one", got.Text)
	}
}

func TestRandom_Empty(t *testing.T) {
	_, err := Random(nil, nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRandom_CoversAll(t *testing.T) {
	quotes := fifteen()
	rng := rand.New(rand.NewPCG(42, 7))

	seen := make(map[string]bool)
	for i := 0; i < 2000; i++ {
		got, err := Random(quotes, rng)
		require.NoError(t, err)
		seen[got.Text] = true
	}
	assert.Len(t, seen, len(quotes))
}
