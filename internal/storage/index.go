package storage

import (
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/matsen/quote/internal/quote"
)

// Index is an ephemeral SQLite full-text mirror of the quote store.
// It can always be rebuilt from quotes.json and is never the source of truth.
type Index struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenIndex opens or creates the index database at path.
func OpenIndex(path string, logger *log.Logger) (*Index, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating cache directory")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening index")
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createIndexSchema(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "creating index schema")
	}

	return &Index{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func createIndexSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);

		CREATE VIRTUAL TABLE IF NOT EXISTS quotes_fts USING fts5(
			quote,
			author,
			reference,
			tags,
			added_date UNINDEXED
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Sync rebuilds the index if the store file changed since the last rebuild.
// Returns whether a rebuild happened.
func (x *Index) Sync(s *Store) (bool, error) {
	hash, err := s.Hash()
	if err != nil {
		return false, errors.Wrap(err, "hashing store")
	}

	stored, err := x.storedHash()
	if err != nil {
		return false, errors.Wrap(err, "reading index metadata")
	}
	if stored == hash {
		return false, nil
	}

	x.logger.Debug("search index is stale, rebuilding", "store", s.Path())
	if _, err := x.Rebuild(s.All(), hash); err != nil {
		return false, err
	}
	return true, nil
}

// Rebuild clears the index and reloads it from quotes, recording hash.
func (x *Index) Rebuild(quotes []quote.Quote, hash string) (int, error) {
	tx, err := x.db.Begin()
	if err != nil {
		return 0, errors.Wrap(err, "beginning rebuild")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM quotes_fts"); err != nil {
		return 0, errors.Wrap(err, "clearing quotes_fts table")
	}

	stmt, err := tx.Prepare(`
		INSERT INTO quotes_fts (quote, author, reference, tags, added_date)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, errors.Wrap(err, "preparing fts insert")
	}
	defer stmt.Close()

	for i, q := range quotes {
		if _, err := stmt.Exec(q.Text, q.Author, q.Reference, strings.Join(q.Tags, " "), q.AddedDate); err != nil {
			return 0, errors.Wrapf(err, "indexing quote %d", i+1)
		}
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('store_hash', ?)`, hash); err != nil {
		return 0, errors.Wrap(err, "updating hash")
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('last_sync', ?)`,
		time.Now().Format(time.RFC3339)); err != nil {
		return 0, errors.Wrap(err, "updating sync time")
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "committing rebuild")
	}

	x.logger.Debug("rebuilt search index", "quotes", len(quotes))
	return len(quotes), nil
}

// Search runs a full-text query and returns matching quote texts, best match first.
func (x *Index) Search(query string, limit int) ([]string, error) {
	ftsQuery := prepareFTSQuery(query)
	if ftsQuery == "" {
		return nil, nil
	}

	rows, err := x.db.Query(`
		SELECT quote FROM quotes_fts
		WHERE quotes_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, errors.Wrap(err, "searching")
	}
	defer rows.Close()

	var texts []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, errors.Wrap(err, "scanning search result")
		}
		texts = append(texts, text)
	}
	return texts, rows.Err()
}

// LastSync returns when the index was last rebuilt, or the zero time.
func (x *Index) LastSync() (time.Time, error) {
	var value sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = 'last_sync'").Scan(&value)
	if err == sql.ErrNoRows {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	if !value.Valid {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, value.String)
}

func (x *Index) storedHash() (string, error) {
	var hash sql.NullString
	err := x.db.QueryRow("SELECT value FROM _meta WHERE key = 'store_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~.,;'!?") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
