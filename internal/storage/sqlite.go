package storage

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mr91i/bibmanager/internal/bib"
	_ "modernc.org/sqlite"
)

// DB wraps the SQLite query cache. The cache is disposable: it is
// rebuilt from the JSONL file whenever the stored content hash differs.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the SQLite cache at the given path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}

	return &DB{db: db}, nil
}

// OpenCache opens the cache for a data root, rebuilding it from the
// database when the entries file has changed since the last rebuild.
func OpenCache(root string, d *Database) (*DB, error) {
	if err := os.MkdirAll(CachePath(root), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := OpenDB(CacheDBPath(root))
	if err != nil {
		return nil, err
	}

	hash, err := FileHash(EntriesPath(root))
	if err != nil {
		db.Close()
		return nil, err
	}
	stored, err := db.storedHash()
	if err != nil {
		db.Close()
		return nil, err
	}
	if stored != hash {
		if _, err := db.Rebuild(d.Entries()); err != nil {
			db.Close()
			return nil, err
		}
		if err := db.setStoredHash(hash); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// Close closes the cache connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			key TEXT PRIMARY KEY,
			title TEXT,
			authors TEXT,
			year INTEGER,
			doi TEXT,
			bibcode TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi)
			WHERE doi IS NOT NULL AND doi != '';

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			key,
			title,
			authors,
			year
		);

		CREATE TABLE IF NOT EXISTS _meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and repopulates it from entries.
func (d *DB) Rebuild(entries []bib.Entry) (int, error) {
	if _, err := d.db.Exec("DELETE FROM entries"); err != nil {
		return 0, fmt.Errorf("clearing entries table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM entries_fts"); err != nil {
		return 0, fmt.Errorf("clearing entries_fts table: %w", err)
	}

	stmt, err := d.db.Prepare(`
		INSERT INTO entries (key, title, authors, year, doi, bibcode)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing entries insert: %w", err)
	}
	defer stmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO entries_fts (key, title, authors, year)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(e.Key, e.Title, e.Authors, e.Year, e.DOI, e.Bibcode); err != nil {
			return 0, fmt.Errorf("inserting entry %s: %w", e.Key, err)
		}
		if _, err := ftsStmt.Exec(e.Key, e.Title, e.Authors, strconv.Itoa(e.Year)); err != nil {
			return 0, fmt.Errorf("inserting fts for %s: %w", e.Key, err)
		}
	}

	return len(entries), nil
}

// Search performs a full-text search over key, title, author and year
// and returns the matching keys in database order.
func (d *DB) Search(query string, limit int) ([]string, error) {
	rows, err := d.db.Query(`
		SELECT key FROM entries
		WHERE key IN (SELECT key FROM entries_fts WHERE entries_fts MATCH ?)
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning search result: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// prepareFTSQuery quotes each term so FTS5 operators in user input are
// treated literally.
func prepareFTSQuery(query string) string {
	terms := strings.Fields(query)
	for i, term := range terms {
		terms[i] = `"` + strings.ReplaceAll(term, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

func (d *DB) storedHash() (string, error) {
	var hash sql.NullString
	err := d.db.QueryRow("SELECT value FROM _meta WHERE key = 'jsonl_hash'").Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return hash.String, nil
}

func (d *DB) setStoredHash(hash string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO _meta (key, value) VALUES ('jsonl_hash', ?)`, hash)
	return err
}
