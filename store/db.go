package store

import (
	"context"
	"errors"
)

// Collection names a typed record collection.
type Collection string

const (
	Users            Collection = "users"
	Sessions         Collection = "sessions"
	Flowers          Collection = "flowers"
	Bouquets         Collection = "bouquets"
	Progress         Collection = "progress"
	ConsecutivePomos Collection = "consecutivePomos"
)

// Secondary index names.
const (
	SessionsByType      = "by-type"
	SessionsByStartTime = "by-startTime"
	FlowersByEarnedAt   = "by-earnedAt"
	FlowersByIsBonus    = "by-isBonus"
	GroupsByStatus      = "by-status"
)

// SchemaVersion is bumped whenever a collection or index is added. Upgrades
// only ever add.
const SchemaVersion = 2

var (
	// ErrNotFound is returned when a key is absent from a collection.
	ErrNotFound = errors.New("record not found")
	// ErrKeyExists is returned by Add when the key is already taken.
	ErrKeyExists = errors.New("record already exists")
	// ErrUnknownCollection is returned for collections outside the schema.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownIndex is returned when querying an undeclared index.
	ErrUnknownIndex = errors.New("unknown index")
)

// Index declares a secondary index over a top-level JSON field of the
// records in a collection.
type Index struct {
	Name  string
	Field string
}

type collectionSchema struct {
	Name    Collection
	Indexes []Index
	// Since is the schema version that introduced the collection
	Since int
}

var schema = []collectionSchema{
	{Name: Users, Since: 1},
	{
		Name:  Sessions,
		Since: 1,
		Indexes: []Index{
			{Name: SessionsByType, Field: "type"},
			{Name: SessionsByStartTime, Field: "startTime"},
		},
	},
	{
		Name:  Flowers,
		Since: 1,
		Indexes: []Index{
			{Name: FlowersByEarnedAt, Field: "earnedAt"},
			{Name: FlowersByIsBonus, Field: "isBonus"},
		},
	},
	{Name: Bouquets, Since: 1},
	{Name: Progress, Since: 1},
	{
		Name:  ConsecutivePomos,
		Since: 2,
		Indexes: []Index{
			{Name: GroupsByStatus, Field: "status"},
		},
	},
}

func lookup(c Collection) (collectionSchema, error) {
	for _, s := range schema {
		if s.Name == c {
			return s, nil
		}
	}

	return collectionSchema{}, ErrUnknownCollection
}

func (s collectionSchema) index(name string) (Index, error) {
	for _, idx := range s.Indexes {
		if idx.Name == name {
			return idx, nil
		}
	}

	return Index{}, ErrUnknownIndex
}

// Range selects index values v with From <= v < To. An empty To leaves the
// range unbounded above.
type Range struct {
	From string
	To   string
}

// Exact selects a single index value.
func Exact(v string) Range {
	return Range{From: v, To: v + "\x00"}
}

func (r Range) contains(v string) bool {
	if v < r.From {
		return false
	}

	return r.To == "" || v < r.To
}

// DB is the database storage interface. Every method commits on its own;
// there are no cross-record transactions.
type DB interface {
	// Get returns the raw record stored under key, or ErrNotFound
	Get(ctx context.Context, c Collection, key string) ([]byte, error)
	// Put creates or overwrites the record stored under key
	Put(ctx context.Context, c Collection, key string, value []byte) error
	// Add creates the record, failing with ErrKeyExists if key is taken
	Add(ctx context.Context, c Collection, key string, value []byte) error
	// All returns every record in the collection ordered by key
	All(ctx context.Context, c Collection) ([][]byte, error)
	// Query returns the records whose index value falls in r, ordered by
	// index value
	Query(ctx context.Context, c Collection, index string, r Range) ([][]byte, error)
	// Close releases the database handle
	Close() error
}
