package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenbloom/models"
)

var now = time.Date(2026, time.May, 14, 9, 30, 0, 0, time.UTC)

func entry(name string, next time.Time) models.GardenEntry {
	return models.GardenEntry{
		Plant:        models.Plant{Name: name},
		AddedDate:    now.Add(-7 * day),
		NextWatering: next,
	}
}

func TestClassifyBuckets(t *testing.T) {
	tests := []struct {
		name   string
		next   time.Time
		days   int
		status string
		class  string
	}{
		{"yesterday", now.Add(-day), -1, StatusWaterNow, "status-urgent"},
		{"right now", now, 0, StatusWaterNow, "status-urgent"},
		{"later today", now.Add(3 * time.Hour), 1, StatusSoon, "status-warning"},
		{"in two days", now.Add(2 * day), 2, StatusSoon, "status-warning"},
		{"in three days", now.Add(3 * day), 3, StatusOnTrack, "status-good"},
		{"in ten days", now.Add(10 * day), 10, StatusOnTrack, "status-good"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(entry("Fern", tt.next), now)
			assert.Equal(t, tt.days, c.DaysUntil)
			assert.Equal(t, tt.status, c.Status)
			assert.Equal(t, tt.class, c.Class)
		})
	}
}

func TestDaysUntilRoundsUp(t *testing.T) {
	assert.Equal(t, 2, DaysUntil(now.Add(day+time.Minute), now))
	assert.Equal(t, 0, DaysUntil(now.Add(-time.Hour), now))
	assert.Equal(t, -1, DaysUntil(now.Add(-day-time.Hour), now))
}

func TestRemindersFilterAndSort(t *testing.T) {
	entries := []models.GardenEntry{
		entry("Five", now.Add(5*day)),
		entry("One", now.Add(1*day)),
		entry("Three", now.Add(3*day)),
		entry("MinusOne", now.Add(-1*day)),
	}

	got := Reminders(entries, now)
	require.Len(t, got, 3)

	days := []int{got[0].DaysUntil, got[1].DaysUntil, got[2].DaysUntil}
	assert.Equal(t, []int{-1, 1, 3}, days)
	assert.Equal(t, []string{"MinusOne", "One", "Three"}, []string{got[0].Plant, got[1].Plant, got[2].Plant})
	assert.Equal(t, []int{3, 1, 2}, []int{got[0].Index, got[1].Index, got[2].Index})

	assert.Equal(t, "reminder-urgent", got[0].Urgency)
	assert.Equal(t, "reminder-warning", got[1].Urgency)
	assert.Equal(t, "reminder-normal", got[2].Urgency)
	assert.Equal(t, "Overdue!", got[0].Message())
	assert.Equal(t, "3 day(s) from now", got[2].Message())
}

func TestRemindersStableForTies(t *testing.T) {
	entries := []models.GardenEntry{
		entry("A", now.Add(2*day)),
		entry("B", now.Add(1*day)),
		entry("C", now.Add(2*day)),
		entry("D", now.Add(1*day)),
	}
	got := Reminders(entries, now)
	names := make([]string, 0, len(got))
	for _, r := range got {
		names = append(names, r.Plant)
	}
	assert.Equal(t, []string{"B", "D", "A", "C"}, names)
}

func TestEmptyGarden(t *testing.T) {
	assert.Empty(t, Reminders(nil, now))
	assert.Empty(t, Rows(nil, now))
	assert.Empty(t, Due(nil, now))
}

func TestDue(t *testing.T) {
	entries := []models.GardenEntry{
		entry("Later", now.Add(2*day)),
		entry("Tomorrow", now.Add(day)),
		entry("Overdue", now.Add(-3*day)),
	}
	due := Due(entries, now)
	require.Len(t, due, 2)
	assert.Equal(t, "Tomorrow", due[0].Name)
	assert.Equal(t, "Overdue", due[1].Name)
}

func TestRowsKeepIndex(t *testing.T) {
	rows := Rows([]models.GardenEntry{entry("A", now), entry("B", now.Add(9*day))}, now)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, StatusOnTrack, rows[1].Status)
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "May 14, 2026", FormatDate(now))
}
