// Package store connects to the data store and manages doro's record
// collections and their secondary indexes
package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/doro/internal/osutil"
)

var errDoroRunning = errors.New(
	"is doro already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	db   *bolt.DB
	path string
}

func indexBucket(c Collection, index string) []byte {
	return []byte(string(c) + "/" + index)
}

// Get returns a copy of the record stored under key.
func (c *Client) Get(
	ctx context.Context,
	coll Collection,
	key string,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := lookup(coll); err != nil {
		return nil, err
	}

	var value []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(coll)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}

		// values are only valid for the life of the transaction
		value = bytes.Clone(v)

		return nil
	})

	return value, err
}

// Put creates or overwrites the record stored under key.
func (c *Client) Put(
	ctx context.Context,
	coll Collection,
	key string,
	value []byte,
) error {
	return c.write(ctx, coll, key, value, false)
}

// Add creates a record, failing if the key is already taken.
func (c *Client) Add(
	ctx context.Context,
	coll Collection,
	key string,
	value []byte,
) error {
	return c.write(ctx, coll, key, value, true)
}

func (c *Client) write(
	ctx context.Context,
	coll Collection,
	key string,
	value []byte,
	mustNotExist bool,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := lookup(coll)
	if err != nil {
		return err
	}

	entries, err := indexEntries(s, value)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))

		old := b.Get([]byte(key))
		if old != nil {
			if mustNotExist {
				return ErrKeyExists
			}

			err := unindex(tx, s, key, old)
			if err != nil {
				return err
			}
		}

		err := b.Put([]byte(key), value)
		if err != nil {
			return err
		}

		return index(tx, coll, key, entries)
	})
}

func index(tx *bolt.Tx, coll Collection, key string, entries []indexEntry) error {
	for _, e := range entries {
		err := tx.Bucket(indexBucket(coll, e.Name)).
			Put(entryKey(e.Value, key), []byte(key))
		if err != nil {
			return err
		}
	}

	return nil
}

func unindex(tx *bolt.Tx, s collectionSchema, key string, old []byte) error {
	entries, err := indexEntries(s, old)
	if err != nil {
		return err
	}

	for _, e := range entries {
		err := tx.Bucket(indexBucket(s.Name, e.Name)).
			Delete(entryKey(e.Value, key))
		if err != nil {
			return err
		}
	}

	return nil
}

// All returns every record in the collection ordered by key.
func (c *Client) All(ctx context.Context, coll Collection) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := lookup(coll); err != nil {
		return nil, err
	}

	var records [][]byte

	err := c.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(coll)).ForEach(func(_, v []byte) error {
			records = append(records, bytes.Clone(v))
			return nil
		})
	})

	return records, err
}

// Query returns the records whose index value falls within r.
func (c *Client) Query(
	ctx context.Context,
	coll Collection,
	name string,
	r Range,
) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := lookup(coll)
	if err != nil {
		return nil, err
	}

	if _, err = s.index(name); err != nil {
		return nil, err
	}

	var records [][]byte

	err = c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(coll))
		cur := tx.Bucket(indexBucket(coll, name)).Cursor()

		for k, pk := cur.Seek([]byte(r.From)); k != nil; k, pk = cur.Next() {
			v, _ := splitEntryKey(k)
			if !r.contains(v) {
				break
			}

			record := b.Get(pk)
			if record == nil {
				continue
			}

			records = append(records, bytes.Clone(record))
		}

		return nil
	})

	return records, err
}

// Close ends the database connection.
func (c *Client) Close() error {
	return c.db.Close()
}

// Path returns the location of the database file.
func (c *Client) Path() string {
	return c.path
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	err := os.MkdirAll(filepath.Dir(pathToDB), osutil.DirPermission)
	if err != nil {
		return nil, err
	}

	db, err := bolt.Open(
		pathToDB,
		osutil.FilePermission,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrTimeout) {
			return nil, errDoroRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient opens the BoltDB database at dbPath and upgrades its schema.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	c := &Client{
		db:   db,
		path: dbPath,
	}

	err = db.Update(c.migrate)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return c, nil
}
