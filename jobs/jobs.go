// Package jobs runs the periodic work: the watering reminder sweep and the
// chat transcript pruning.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"greenbloom/chat"
	"greenbloom/config"
	"greenbloom/notify"
)

const pruneSchedule = "@every 10m"

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// New registers the jobs on a scheduler that is not started yet.
func New(cfg config.RemindersConfig, loc *time.Location, reminders *Reminders, hub *chat.Hub, idle time.Duration) (*cron.Cron, error) {
	if loc == nil {
		loc = time.Local
	}
	sched := cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	if hub != nil {
		if _, err := sched.AddFunc(pruneSchedule, func() {
			defer recoverJob("chat-prune")
			hub.Prune(idle)
		}); err != nil {
			return nil, err
		}
	}

	if cfg.Enabled && reminders != nil {
		if _, err := sched.AddFunc(cfg.Schedule, func() {
			defer recoverJob("reminders")
			RunReminders(context.Background(), reminders)
		}); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

// RunReminders runs one sweep and logs the outcome.
func RunReminders(ctx context.Context, r *Reminders) int {
	sent, err := r.Sweep(ctx)
	switch {
	case errors.Is(err, notify.ErrUnsupported):
		zap.S().Debugf("reminder sweep skipped: %v", err)
	case err != nil:
		zap.S().Errorf("reminder sweep error %s", err.Error())
	default:
		zap.S().Infof("reminder sweep sent %d reminder(s)", sent)
	}
	return sent
}

func recoverJob(name string) {
	if err := recover(); err != nil {
		zap.S().Errorf("job %s panicked: %v", name, err)
	}
}
