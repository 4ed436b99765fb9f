package store

import (
	"bytes"
	"context"
	"slices"
	"strings"
	"sync"
)

// Memory is a process-local store. Nothing survives Close.
type Memory struct {
	mu      sync.RWMutex
	records map[Collection]map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	m := &Memory{records: make(map[Collection]map[string][]byte)}

	for _, s := range schema {
		m.records[s.Name] = make(map[string][]byte)
	}

	return m
}

// Get returns a copy of the record stored under key.
func (m *Memory) Get(ctx context.Context, c Collection, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := lookup(c); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.records[c][key]
	if !ok {
		return nil, ErrNotFound
	}

	return bytes.Clone(v), nil
}

// Put creates or overwrites the record stored under key.
func (m *Memory) Put(ctx context.Context, c Collection, key string, value []byte) error {
	return m.write(ctx, c, key, value, false)
}

// Add creates a record, failing if the key is already taken.
func (m *Memory) Add(ctx context.Context, c Collection, key string, value []byte) error {
	return m.write(ctx, c, key, value, true)
}

func (m *Memory) write(
	ctx context.Context,
	c Collection,
	key string,
	value []byte,
	mustNotExist bool,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s, err := lookup(c)
	if err != nil {
		return err
	}

	if _, err = indexEntries(s, value); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[c][key]; ok && mustNotExist {
		return ErrKeyExists
	}

	m.records[c][key] = bytes.Clone(value)

	return nil
}

// All returns every record in the collection ordered by key.
func (m *Memory) All(ctx context.Context, c Collection) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := lookup(c); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.records[c]))
	for k := range m.records[c] {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	records := make([][]byte, 0, len(keys))
	for _, k := range keys {
		records = append(records, bytes.Clone(m.records[c][k]))
	}

	return records, nil
}

// Query returns the records whose index value falls within r.
func (m *Memory) Query(
	ctx context.Context,
	c Collection,
	name string,
	r Range,
) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s, err := lookup(c)
	if err != nil {
		return nil, err
	}

	idx, err := s.index(name)
	if err != nil {
		return nil, err
	}

	single := collectionSchema{Name: c, Indexes: []Index{idx}}

	type hit struct {
		value, key string
		record     []byte
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var hits []hit

	for k, v := range m.records[c] {
		entries, err := indexEntries(single, v)
		if err != nil {
			return nil, err
		}

		if len(entries) == 0 || !r.contains(entries[0].Value) {
			continue
		}

		hits = append(hits, hit{entries[0].Value, k, v})
	}

	slices.SortFunc(hits, func(a, b hit) int {
		if n := strings.Compare(a.value, b.value); n != 0 {
			return n
		}

		return strings.Compare(a.key, b.key)
	})

	records := make([][]byte, 0, len(hits))
	for _, h := range hits {
		records = append(records, bytes.Clone(h.record))
	}

	return records, nil
}

// Close is a no-op; the records live as long as the Memory value.
func (m *Memory) Close() error {
	return nil
}
