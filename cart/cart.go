// Package cart implements the visitor's shopping cart over the "cart" slot.
// Every operation is a whole-collection read-modify-write.
package cart

import (
	"context"
	"math"

	"greenbloom/models"
	"greenbloom/store"
)

type Engine struct {
	store *store.Store
}

func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s}
}

// Lines returns the visitor's cart; a cart never written is empty.
func (e *Engine) Lines(ctx context.Context, owner string) ([]models.CartLine, error) {
	return store.Load[models.CartLine](ctx, e.store, owner, store.KeyCart)
}

// Add puts one more unit of p in the cart, merging with an existing line
// for the same product id.
func (e *Engine) Add(ctx context.Context, owner string, p models.Product) ([]models.CartLine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return store.Modify(ctx, e.store, owner, store.KeyCart, func(lines []models.CartLine) ([]models.CartLine, error) {
		for i := range lines {
			if lines[i].ID == p.ID {
				lines[i].Quantity++
				return lines, nil
			}
		}
		return append(lines, models.CartLine{Product: p, Quantity: 1}), nil
	})
}

// UpdateQuantity adds delta to the line at index and drops the line when
// the quantity reaches zero. An out-of-range index changes nothing.
func (e *Engine) UpdateQuantity(ctx context.Context, owner string, index, delta int) ([]models.CartLine, error) {
	return store.Modify(ctx, e.store, owner, store.KeyCart, func(lines []models.CartLine) ([]models.CartLine, error) {
		if index < 0 || index >= len(lines) {
			return nil, store.ErrNoChange
		}
		lines[index].Quantity += delta
		if lines[index].Quantity <= 0 {
			return append(lines[:index], lines[index+1:]...), nil
		}
		return lines, nil
	})
}

// Remove drops the line at index. An out-of-range index changes nothing.
func (e *Engine) Remove(ctx context.Context, owner string, index int) ([]models.CartLine, error) {
	return store.Modify(ctx, e.store, owner, store.KeyCart, func(lines []models.CartLine) ([]models.CartLine, error) {
		if index < 0 || index >= len(lines) {
			return nil, store.ErrNoChange
		}
		return append(lines[:index], lines[index+1:]...), nil
	})
}

// Clear deletes the whole cart slot.
func (e *Engine) Clear(ctx context.Context, owner string) error {
	return e.store.Delete(ctx, owner, store.KeyCart)
}

// Total is the sum of price times quantity, rounded to cents.
func Total(lines []models.CartLine) float64 {
	var sum float64
	for _, l := range lines {
		sum += l.Subtotal()
	}
	return math.Round(sum*100) / 100
}

// Count is the number of units in the cart, shown on the header badge.
func Count(lines []models.CartLine) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
