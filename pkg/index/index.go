// Package index caches a vault listing in SQLite so resolutions can skip the filesystem walk.
package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mattsolo1/grove-opener/pkg/tree"
)

// ErrNotIndexed is returned by Load when a vault has never been stored.
var ErrNotIndexed = errors.New("vault is not indexed")

// Index manages the listing cache
type Index struct {
	db *sql.DB
}

// Open opens (creating if needed) the index database at dbPath.
func Open(dbPath string) (*Index, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db}
	if err := idx.init(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// init creates the database schema
func (idx *Index) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS entries (
		vault TEXT NOT NULL,
		path TEXT NOT NULL,
		kind INTEGER NOT NULL,
		tags TEXT NOT NULL DEFAULT '',
		mod_time TIMESTAMP,
		position INTEGER NOT NULL,
		PRIMARY KEY (vault, path)
	);

	CREATE INDEX IF NOT EXISTS idx_entries_position ON entries(vault, position);

	CREATE TABLE IF NOT EXISTS vaults (
		vault TEXT PRIMARY KEY,
		indexed_at TIMESTAMP NOT NULL
	);
	`

	if _, err := idx.db.Exec(schema); err != nil {
		return fmt.Errorf("create index schema: %w", err)
	}
	return nil
}

// Store replaces the cached listing of vault with t.
func (idx *Index) Store(ctx context.Context, vault string, t *tree.Tree) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE vault = ?", vault); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (vault, path, kind, tags, mod_time, position)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	// Pre-order traversal puts every parent before its children, so Load can
	// rebuild the same child order.
	position := 0
	var insert func(e *tree.Entry) error
	insert = func(e *tree.Entry) error {
		for _, child := range e.Children {
			_, err := stmt.ExecContext(ctx, vault, child.Path, int(child.Kind),
				strings.Join(child.Tags, "\n"), child.ModTime, position)
			if err != nil {
				return fmt.Errorf("index %s: %w", child.Path, err)
			}
			position++
			if err := insert(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert(t.Root); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vaults (vault, indexed_at) VALUES (?, ?)
		ON CONFLICT(vault) DO UPDATE SET indexed_at = excluded.indexed_at
	`, vault, time.Now().UTC())
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Load rebuilds the cached listing of vault.
func (idx *Index) Load(ctx context.Context, vault string) (*tree.Tree, error) {
	if _, err := idx.IndexedAt(ctx, vault); err != nil {
		return nil, err
	}

	rows, err := idx.db.QueryContext(ctx, `
		SELECT path, kind, tags, mod_time
		FROM entries
		WHERE vault = ?
		ORDER BY position
	`, vault)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	t := tree.New()
	for rows.Next() {
		var (
			path    string
			kind    int
			tags    string
			modTime sql.NullTime
		)
		if err := rows.Scan(&path, &kind, &tags, &modTime); err != nil {
			return nil, err
		}

		var entry *tree.Entry
		if tree.Kind(kind) == tree.Directory {
			entry = t.AddDirectory(path)
		} else {
			entry = t.AddDocument(path, splitTags(tags)...)
		}
		if modTime.Valid {
			entry.ModTime = modTime.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return t, nil
}

// IndexedAt reports when vault was last stored.
func (idx *Index) IndexedAt(ctx context.Context, vault string) (time.Time, error) {
	var at time.Time
	err := idx.db.QueryRowContext(ctx, "SELECT indexed_at FROM vaults WHERE vault = ?", vault).Scan(&at)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrNotIndexed
	}
	return at, err
}

// Remove drops the cached listing of vault.
func (idx *Index) Remove(ctx context.Context, vault string) error {
	tx, err := idx.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE vault = ?", vault); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM vaults WHERE vault = ?", vault); err != nil {
		return err
	}

	return tx.Commit()
}

// Close closes the index
func (idx *Index) Close() error {
	return idx.db.Close()
}

func splitTags(tags string) []string {
	if tags == "" {
		return nil
	}
	return strings.Split(tags, "\n")
}
