package store

import (
	"encoding/binary"

	bolt "go.etcd.io/bbolt"
)

var (
	metaBucket = []byte("_meta")
	versionKey = []byte("version")
)

func storedVersion(tx *bolt.Tx) int {
	b := tx.Bucket(metaBucket)
	if b == nil {
		return 0
	}

	v := b.Get(versionKey)
	if len(v) != 8 {
		return 0
	}

	return int(binary.BigEndian.Uint64(v))
}

// migrate brings the database up to SchemaVersion. Existing buckets and
// records are never removed. Indexes created here are backfilled from the
// records already present.
func (c *Client) migrate(tx *bolt.Tx) error {
	if storedVersion(tx) >= SchemaVersion {
		return nil
	}

	for _, s := range schema {
		b, err := tx.CreateBucketIfNotExists([]byte(s.Name))
		if err != nil {
			return err
		}

		for _, idx := range s.Indexes {
			name := indexBucket(s.Name, idx.Name)
			if tx.Bucket(name) != nil {
				continue
			}

			_, err = tx.CreateBucket(name)
			if err != nil {
				return err
			}

			err = backfill(tx, s, idx, b)
			if err != nil {
				return err
			}
		}
	}

	meta, err := tx.CreateBucketIfNotExists(metaBucket)
	if err != nil {
		return err
	}

	v := make([]byte, 8)
	binary.BigEndian.PutUint64(v, uint64(SchemaVersion))

	return meta.Put(versionKey, v)
}

func backfill(tx *bolt.Tx, s collectionSchema, idx Index, b *bolt.Bucket) error {
	single := collectionSchema{Name: s.Name, Indexes: []Index{idx}}

	return b.ForEach(func(k, v []byte) error {
		entries, err := indexEntries(single, v)
		if err != nil {
			return err
		}

		return index(tx, s.Name, string(k), entries)
	})
}
