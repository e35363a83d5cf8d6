// Package store keeps the per-visitor record slots (the cart, the garden,
// reminder opt-ins) as JSON arrays behind a pluggable key-value backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"
)

// Slot keys. Each visitor owns at most one value per key.
const (
	KeyCart        = "cart"
	KeyGarden      = "myGarden"
	KeyReminders   = "reminders"
	KeySubscribers = "subscribers"

	// SiteOwner owns slots that are not tied to a visitor.
	SiteOwner = "site"
)

var (
	ErrClosed = errors.New("store: closed")

	// ErrNoChange may be returned by an Update or Modify callback to leave
	// the slot untouched. It is not reported to the caller.
	ErrNoChange = errors.New("store: no change")
)

// Backend is the raw slot storage. Get returns nil, nil for a missing slot.
type Backend interface {
	Get(ctx context.Context, owner, key string) ([]byte, error)
	Put(ctx context.Context, owner, key string, value []byte) error
	Delete(ctx context.Context, owner, key string) error
	Owners(ctx context.Context, key string) ([]string, error)
	Close() error
}

// Store wraps a Backend with per-slot locking and change notifications.
// Writers of the same slot are serialised inside this process only; two
// processes sharing a backend still overwrite each other's last write.
type Store struct {
	backend Backend
	bus     EventBus.Bus
	locks   sync.Map // owner+"\x00"+key -> *sync.Mutex
}

func New(backend Backend) *Store {
	return &Store{backend: backend, bus: EventBus.New()}
}

func (s *Store) lock(owner, key string) func() {
	v, _ := s.locks.LoadOrStore(owner+"\x00"+key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func topic(key string) string { return "store:" + key }

func (s *Store) Read(ctx context.Context, owner, key string) ([]byte, error) {
	return s.backend.Get(ctx, owner, key)
}

func (s *Store) Write(ctx context.Context, owner, key string, value []byte) error {
	unlock := s.lock(owner, key)
	err := s.backend.Put(ctx, owner, key, value)
	unlock()
	if err != nil {
		return err
	}
	s.bus.Publish(topic(key), owner)
	return nil
}

func (s *Store) Delete(ctx context.Context, owner, key string) error {
	unlock := s.lock(owner, key)
	err := s.backend.Delete(ctx, owner, key)
	unlock()
	if err != nil {
		return err
	}
	s.bus.Publish(topic(key), owner)
	return nil
}

// Update runs fn on the current slot value and stores its result while
// holding the slot lock. A nil result deletes the slot.
func (s *Store) Update(ctx context.Context, owner, key string, fn func(current []byte) ([]byte, error)) error {
	unlock := s.lock(owner, key)
	err := s.update(ctx, owner, key, fn)
	unlock()
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	s.bus.Publish(topic(key), owner)
	return nil
}

func (s *Store) update(ctx context.Context, owner, key string, fn func([]byte) ([]byte, error)) error {
	current, err := s.backend.Get(ctx, owner, key)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return s.backend.Delete(ctx, owner, key)
	}
	return s.backend.Put(ctx, owner, key, next)
}

// Subscribe registers fn to run after every write or delete of key.
// fn receives the owner of the changed slot and runs synchronously.
func (s *Store) Subscribe(key string, fn func(owner string)) error {
	return s.bus.Subscribe(topic(key), fn)
}

// Owners lists every owner holding a value under key.
func (s *Store) Owners(ctx context.Context, key string) ([]string, error) {
	return s.backend.Owners(ctx, key)
}

func (s *Store) Close() error {
	return s.backend.Close()
}

// Load decodes the slot as a JSON array. A missing, empty or undecodable
// slot yields an empty collection; the last case is logged.
func Load[T any](ctx context.Context, s *Store, owner, key string) ([]T, error) {
	data, err := s.Read(ctx, owner, key)
	if err != nil {
		return nil, err
	}
	return decode[T](owner, key, data), nil
}

// Save replaces the slot with items.
func Save[T any](ctx context.Context, s *Store, owner, key string, items []T) error {
	data, err := encode(items)
	if err != nil {
		return err
	}
	return s.Write(ctx, owner, key, data)
}

// Modify is an atomic read-modify-write of a JSON array slot. It returns the
// collection as stored. When fn returns ErrNoChange the current collection is
// returned and nothing is written.
func Modify[T any](ctx context.Context, s *Store, owner, key string, fn func([]T) ([]T, error)) ([]T, error) {
	var out []T
	err := s.Update(ctx, owner, key, func(current []byte) ([]byte, error) {
		decoded := decode[T](owner, key, current)
		out = append([]T{}, decoded...)
		items, err := fn(decoded)
		if err != nil {
			return nil, err
		}
		out = items
		return encode(items)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func decode[T any](owner, key string, data []byte) []T {
	items := []T{}
	if len(data) == 0 {
		return items
	}
	if err := json.Unmarshal(data, &items); err != nil {
		zap.L().Warn("discarding undecodable slot",
			zap.String("owner", owner), zap.String("key", key), zap.Error(err))
		return []T{}
	}
	return items
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
