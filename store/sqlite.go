package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/ayoisaiah/doro/internal/osutil"
)

const (
	sqliteRecordsVersion = 1
	sqliteIndexesVersion = 2
)

// SQLite stores records in a single SQLite database file.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the SQLite database at dbPath and upgrades
// its schema.
func NewSQLite(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		err := os.MkdirAll(filepath.Dir(dbPath), osutil.DirPermission)
		if err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	var version int

	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= SchemaVersion {
		return nil
	}

	if version < sqliteRecordsVersion {
		_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			key        TEXT NOT NULL,
			value      BLOB NOT NULL,
			PRIMARY KEY (collection, key)
		);`)
		if err != nil {
			return err
		}
	}

	if version < sqliteIndexesVersion {
		_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS record_indexes (
			collection TEXT NOT NULL,
			name       TEXT NOT NULL,
			value      TEXT NOT NULL,
			key        TEXT NOT NULL,
			PRIMARY KEY (collection, name, value, key)
		);`)
		if err != nil {
			return err
		}

		if err = s.reindex(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion))

	return err
}

// reindex rebuilds the index table from the stored records.
func (s *SQLite) reindex() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err = tx.Exec("DELETE FROM record_indexes"); err != nil {
		return err
	}

	for _, cs := range schema {
		if len(cs.Indexes) == 0 {
			continue
		}

		rows, err := tx.Query(
			"SELECT key, value FROM records WHERE collection = ?",
			string(cs.Name),
		)
		if err != nil {
			return err
		}

		type record struct {
			key   string
			value []byte
		}

		var records []record

		for rows.Next() {
			var r record
			if err := rows.Scan(&r.key, &r.value); err != nil {
				rows.Close()
				return err
			}

			records = append(records, r)
		}

		rows.Close()

		if err := rows.Err(); err != nil {
			return err
		}

		for _, r := range records {
			if err := insertIndexes(tx, cs, r.key, r.value); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func insertIndexes(tx *sql.Tx, cs collectionSchema, key string, value []byte) error {
	entries, err := indexEntries(cs, value)
	if err != nil {
		return err
	}

	for _, e := range entries {
		_, err := tx.Exec(
			`INSERT OR REPLACE INTO record_indexes (collection, name, value, key)
			VALUES (?, ?, ?, ?)`,
			string(cs.Name), e.Name, e.Value, key,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns the record stored under key.
func (s *SQLite) Get(ctx context.Context, c Collection, key string) ([]byte, error) {
	if _, err := lookup(c); err != nil {
		return nil, err
	}

	var value []byte

	err := s.db.QueryRowContext(
		ctx,
		"SELECT value FROM records WHERE collection = ? AND key = ?",
		string(c), key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	return value, err
}

// Put creates or overwrites the record stored under key.
func (s *SQLite) Put(ctx context.Context, c Collection, key string, value []byte) error {
	return s.write(ctx, c, key, value, false)
}

// Add creates a record, failing if the key is already taken.
func (s *SQLite) Add(ctx context.Context, c Collection, key string, value []byte) error {
	return s.write(ctx, c, key, value, true)
}

func (s *SQLite) write(
	ctx context.Context,
	c Collection,
	key string,
	value []byte,
	mustNotExist bool,
) error {
	cs, err := lookup(c)
	if err != nil {
		return err
	}

	// fail before touching the database if the record cannot be indexed
	if _, err = indexEntries(cs, value); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var exists int

	err = tx.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM records WHERE collection = ? AND key = ?",
		string(c), key,
	).Scan(&exists)
	if err != nil {
		return err
	}

	if exists > 0 && mustNotExist {
		return ErrKeyExists
	}

	_, err = tx.ExecContext(
		ctx,
		"DELETE FROM record_indexes WHERE collection = ? AND key = ?",
		string(c), key,
	)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO records (collection, key, value) VALUES (?, ?, ?)
		ON CONFLICT (collection, key) DO UPDATE SET value = excluded.value`,
		string(c), key, value,
	)
	if err != nil {
		return err
	}

	if err = insertIndexes(tx, cs, key, value); err != nil {
		return err
	}

	return tx.Commit()
}

// All returns every record in the collection ordered by key.
func (s *SQLite) All(ctx context.Context, c Collection) ([][]byte, error) {
	if _, err := lookup(c); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		"SELECT value FROM records WHERE collection = ? ORDER BY key",
		string(c),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records [][]byte

	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}

		records = append(records, v)
	}

	return records, rows.Err()
}

// Query returns the records whose index value falls within r.
func (s *SQLite) Query(
	ctx context.Context,
	c Collection,
	name string,
	r Range,
) ([][]byte, error) {
	cs, err := lookup(c)
	if err != nil {
		return nil, err
	}

	if _, err = cs.index(name); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT i.value, r.value
		FROM record_indexes i
		JOIN records r ON r.collection = i.collection AND r.key = i.key
		WHERE i.collection = ? AND i.name = ? AND i.value >= ?
		ORDER BY i.value, i.key`,
		string(c), name, r.From,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records [][]byte

	for rows.Next() {
		var (
			iv string
			v  []byte
		)

		if err := rows.Scan(&iv, &v); err != nil {
			return nil, err
		}

		if !r.contains(iv) {
			break
		}

		records = append(records, v)
	}

	return records, rows.Err()
}

// Close ends the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
