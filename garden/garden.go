// Package garden tracks the plants a visitor waters, stored in the
// "myGarden" slot.
package garden

import (
	"context"
	"time"

	"greenbloom/models"
	"greenbloom/store"
)

// IntervalFunc turns a plant's free-text watering frequency into the time
// between two waterings.
type IntervalFunc func(frequency string) time.Duration

type Engine struct {
	store    *store.Store
	interval IntervalFunc
	now      func() time.Time
}

type Option func(*Engine)

func WithInterval(fn IntervalFunc) Option {
	return func(e *Engine) { e.interval = fn }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(s *store.Store, opts ...Option) *Engine {
	e := &Engine{store: s, interval: ParseFrequency, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Entries(ctx context.Context, owner string) ([]models.GardenEntry, error) {
	return store.Load[models.GardenEntry](ctx, e.store, owner, store.KeyGarden)
}

// Add appends a copy of p dated now. Adding the same plant twice tracks it
// twice, one entry per pot.
func (e *Engine) Add(ctx context.Context, owner string, p models.Plant) ([]models.GardenEntry, error) {
	now := e.now()
	entry := models.GardenEntry{
		Plant:        p,
		AddedDate:    now,
		NextWatering: now.Add(e.interval(p.WateringFrequency)),
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return store.Modify(ctx, e.store, owner, store.KeyGarden, func(entries []models.GardenEntry) ([]models.GardenEntry, error) {
		return append(entries, entry), nil
	})
}

// MarkWatered moves the next watering of the entry at index one interval
// past now. An out-of-range index changes nothing.
func (e *Engine) MarkWatered(ctx context.Context, owner string, index int) ([]models.GardenEntry, error) {
	now := e.now()
	return store.Modify(ctx, e.store, owner, store.KeyGarden, func(entries []models.GardenEntry) ([]models.GardenEntry, error) {
		if index < 0 || index >= len(entries) {
			return nil, store.ErrNoChange
		}
		entries[index].NextWatering = now.Add(e.interval(entries[index].WateringFrequency))
		return entries, nil
	})
}

func (e *Engine) Remove(ctx context.Context, owner string, index int) ([]models.GardenEntry, error) {
	return store.Modify(ctx, e.store, owner, store.KeyGarden, func(entries []models.GardenEntry) ([]models.GardenEntry, error) {
		if index < 0 || index >= len(entries) {
			return nil, store.ErrNoChange
		}
		return append(entries[:index], entries[index+1:]...), nil
	})
}

func (e *Engine) Clear(ctx context.Context, owner string) error {
	return e.store.Delete(ctx, owner, store.KeyGarden)
}
