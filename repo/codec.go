package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ayoisaiah/doro/store"
)

func get[T any](
	ctx context.Context,
	db store.DB,
	c store.Collection,
	key string,
) (*T, error) {
	b, err := db.Get(ctx, c, key)
	if err != nil {
		return nil, err
	}

	var v T

	err = json.Unmarshal(b, &v)
	if err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", c, key, err)
	}

	return &v, nil
}

func put[T any](
	ctx context.Context,
	db store.DB,
	c store.Collection,
	key string,
	v *T,
) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return db.Put(ctx, c, key, b)
}

func add[T any](
	ctx context.Context,
	db store.DB,
	c store.Collection,
	key string,
	v *T,
) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return db.Add(ctx, c, key, b)
}

func decodeAll[T any](records [][]byte) ([]T, error) {
	out := make([]T, 0, len(records))

	for _, b := range records {
		var v T

		err := json.Unmarshal(b, &v)
		if err != nil {
			return nil, err
		}

		out = append(out, v)
	}

	return out, nil
}

func all[T any](ctx context.Context, db store.DB, c store.Collection) ([]T, error) {
	records, err := db.All(ctx, c)
	if err != nil {
		return nil, err
	}

	return decodeAll[T](records)
}

func query[T any](
	ctx context.Context,
	db store.DB,
	c store.Collection,
	index string,
	r store.Range,
) ([]T, error) {
	records, err := db.Query(ctx, c, index, r)
	if err != nil {
		return nil, err
	}

	return decodeAll[T](records)
}
