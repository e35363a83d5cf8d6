package jobs

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"greenbloom/models"
	"greenbloom/notify"
	"greenbloom/schedule"
	"greenbloom/store"
)

// Reminders mails every opted-in visitor about plants due within a day.
// A plant is mailed once per due date; any change to the visitor's garden
// makes all of its plants eligible again.
type Reminders struct {
	store    *store.Store
	notifier notify.Notifier
	now      func() time.Time

	mu   sync.Mutex
	sent map[string]map[string]bool // owner -> entry key
}

func NewReminders(s *store.Store, n notify.Notifier, now func() time.Time) (*Reminders, error) {
	if now == nil {
		now = time.Now
	}
	r := &Reminders{store: s, notifier: n, now: now, sent: map[string]map[string]bool{}}
	// runs under the bus lock, so it must not write to the store
	if err := s.Subscribe(store.KeyGarden, r.forget); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reminders) forget(owner string) {
	r.mu.Lock()
	delete(r.sent, owner)
	r.mu.Unlock()
}

func (r *Reminders) mark(owner, key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sent[owner][key] {
		return false
	}
	if r.sent[owner] == nil {
		r.sent[owner] = map[string]bool{}
	}
	r.sent[owner][key] = true
	return true
}

func (r *Reminders) unmark(owner, key string) {
	r.mu.Lock()
	delete(r.sent[owner], key)
	r.mu.Unlock()
}

// entryKey identifies one pot and due date. The index keeps two pots of the
// same plant apart; any garden change clears the keys anyway.
func entryKey(index int, e models.GardenEntry) string {
	return strconv.Itoa(index) + "|" + e.Name + "|" + e.NextWatering.UTC().Format(time.RFC3339)
}

// Sweep sends the pending reminders and returns how many went out.
func (r *Reminders) Sweep(ctx context.Context) (int, error) {
	owners, err := r.store.Owners(ctx, store.KeyReminders)
	if err != nil {
		return 0, err
	}

	now := r.now()
	total := 0
	for _, owner := range owners {
		optIns, err := store.Load[models.ReminderOptIn](ctx, r.store, owner, store.KeyReminders)
		if err != nil {
			return total, err
		}
		if len(optIns) == 0 {
			continue
		}
		email := optIns[len(optIns)-1].Email

		entries, err := store.Load[models.GardenEntry](ctx, r.store, owner, store.KeyGarden)
		if err != nil {
			return total, err
		}

		for i, e := range entries {
			if schedule.DaysUntil(e.NextWatering, now) > schedule.NotifyWindowDays {
				continue
			}
			key := entryKey(i, e)
			if !r.mark(owner, key) {
				continue
			}
			if err := r.notifier.Notify(ctx, notify.WateringMessage(email, e)); err != nil {
				r.unmark(owner, key)
				if errors.Is(err, notify.ErrUnsupported) {
					return total, err
				}
				zap.L().Warn("watering reminder failed",
					zap.String("owner", owner), zap.String("plant", e.Name), zap.Error(err))
				break
			}
			total++
		}
	}
	return total, nil
}
