package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// timeKeyLayout is fixed width so that keys sort chronologically.
const timeKeyLayout = "2006-01-02T15:04:05.000000000"

// TimeKey converts a time value to an index key.
func TimeKey(t time.Time) string {
	return t.UTC().Format(timeKeyLayout) + "Z"
}

// BoolKey converts a boolean to an index key.
func BoolKey(b bool) string {
	return strconv.FormatBool(b)
}

type indexEntry struct {
	Name  string
	Value string
}

// indexEntries extracts the index values of a record. Records whose indexed
// field is missing or null are left out of that index.
func indexEntries(s collectionSchema, value []byte) ([]indexEntry, error) {
	if len(s.Indexes) == 0 {
		return nil, nil
	}

	var fields map[string]json.RawMessage

	err := json.Unmarshal(value, &fields)
	if err != nil {
		return nil, fmt.Errorf("decoding %s record: %w", s.Name, err)
	}

	entries := make([]indexEntry, 0, len(s.Indexes))

	for _, idx := range s.Indexes {
		raw, ok := fields[idx.Field]
		if !ok {
			continue
		}

		key, ok, err := indexKey(raw)
		if err != nil {
			return nil, fmt.Errorf("indexing %s.%s: %w", s.Name, idx.Field, err)
		}

		if !ok {
			continue
		}

		entries = append(entries, indexEntry{Name: idx.Name, Value: key})
	}

	return entries, nil
}

func indexKey(raw json.RawMessage) (string, bool, error) {
	var v any

	err := json.Unmarshal(raw, &v)
	if err != nil {
		return "", false, err
	}

	switch val := v.(type) {
	case nil:
		return "", false, nil
	case bool:
		return BoolKey(val), true, nil
	case float64:
		return string(raw), true, nil
	case string:
		if t, err := time.Parse(time.RFC3339Nano, val); err == nil {
			return TimeKey(t), true, nil
		}

		return val, true, nil
	default:
		// arrays and objects are not indexable
		return "", false, nil
	}
}

// entryKey is the composite key of an index entry. Primary keys never
// contain NUL so the last NUL separates the two parts.
func entryKey(value, primary string) []byte {
	return []byte(value + "\x00" + primary)
}

func splitEntryKey(k []byte) (value, primary string) {
	for i := len(k) - 1; i >= 0; i-- {
		if k[i] == 0 {
			return string(k[:i]), string(k[i+1:])
		}
	}

	return string(k), ""
}
