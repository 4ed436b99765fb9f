package repo

import (
	"context"
	"errors"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/store"
)

// Bouquets stores the single bouquet of earned flowers.
type Bouquets struct {
	*base
}

// Main returns the bouquet, creating an empty one on first access.
func (r *Bouquets) Main(ctx context.Context) (*models.Bouquet, error) {
	b, err := get[models.Bouquet](ctx, r.db, store.Bouquets, BouquetKey)
	if !errors.Is(err, store.ErrNotFound) {
		return b, err
	}

	b = &models.Bouquet{
		BouquetID: BouquetKey,
		Flowers:   []string{},
		CreatedAt: r.now().UTC(),
	}

	err = add(ctx, r.db, store.Bouquets, BouquetKey, b)
	if errors.Is(err, store.ErrKeyExists) {
		return get[models.Bouquet](ctx, r.db, store.Bouquets, BouquetKey)
	}

	if err != nil {
		return nil, err
	}

	return b, nil
}

// AddFlower appends a flower to the bouquet.
func (r *Bouquets) AddFlower(ctx context.Context, flowerID string) error {
	b, err := r.Main(ctx)
	if err != nil {
		return err
	}

	b.Flowers = append(b.Flowers, flowerID)

	return put(ctx, r.db, store.Bouquets, BouquetKey, b)
}

// FlowerIDs returns the bouquet's flowers in the order they were added.
func (r *Bouquets) FlowerIDs(ctx context.Context) ([]string, error) {
	b, err := r.Main(ctx)
	if err != nil {
		return nil, err
	}

	return b.Flowers, nil
}
