// Package cache keeps a SQLite snapshot of the last successfully loaded blog
// so a previously read site opens without network access. It is a second,
// read-only source of whole catalogs, never partial state.
package cache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"plume/internal/catalog"
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    site TEXT NOT NULL,
    file TEXT NOT NULL,
    title TEXT NOT NULL DEFAULT '',
    date TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    excerpt TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '[]',
    position INTEGER NOT NULL,
    UNIQUE (site, file)
);

CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    site TEXT NOT NULL,
    file TEXT NOT NULL,
    body TEXT NOT NULL,
    fetched_at INTEGER NOT NULL,
    UNIQUE (site, file)
);
`

// DB wraps the SQLite cache connection.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// OpenMemory opens an in-memory cache (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the cache connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// SaveCatalog replaces the cached post list for a site with the given posts.
func (db *DB) SaveCatalog(site string, posts []catalog.Post) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM posts WHERE site = ?", site); err != nil {
		return fmt.Errorf("clear cached posts: %w", err)
	}

	for i, p := range posts {
		tags, err := json.Marshal(p.Tags)
		if err != nil {
			return fmt.Errorf("encode tags for %s: %w", p.File, err)
		}
		_, err = tx.Exec(`
			INSERT INTO posts (site, file, title, date, category, excerpt, tags, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, site, p.File, p.Title, p.Date, p.Category, p.Excerpt, string(tags), i)
		if err != nil {
			return fmt.Errorf("cache post %s: %w", p.File, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog returns the cached catalog for a site, in original index order.
// ok is false when the site has never been cached.
func (db *DB) LoadCatalog(site string) (*catalog.Catalog, bool, error) {
	rows, err := db.conn.Query(`
		SELECT file, title, date, category, excerpt, tags
		FROM posts
		WHERE site = ?
		ORDER BY position
	`, site)
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	var posts []catalog.Post
	for rows.Next() {
		var p catalog.Post
		var tags string
		if err := rows.Scan(&p.File, &p.Title, &p.Date, &p.Category, &p.Excerpt, &tags); err != nil {
			return nil, false, err
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, false, fmt.Errorf("decode tags for %s: %w", p.File, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	if len(posts) == 0 {
		return nil, false, nil
	}

	return catalog.FromPosts(posts), true, nil
}

// PutDocument caches the raw body of a fetched post document.
func (db *DB) PutDocument(site, file, body string) error {
	_, err := db.conn.Exec(`
		INSERT INTO documents (site, file, body, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(site, file) DO UPDATE SET
			body = excluded.body,
			fetched_at = excluded.fetched_at
	`, site, file, body, time.Now().Unix())
	return err
}

// GetDocument returns a cached document body, if present.
func (db *DB) GetDocument(site, file string) (string, bool, error) {
	var body string
	err := db.conn.QueryRow(
		"SELECT body FROM documents WHERE site = ? AND file = ?",
		site, file,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return body, true, nil
}
