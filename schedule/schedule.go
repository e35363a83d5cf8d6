// Package schedule derives watering status and reminders from garden entries.
// Everything here is a pure function of the entries and the current time.
package schedule

import (
	"fmt"
	"math"
	"sort"
	"time"

	"greenbloom/models"
)

const (
	StatusWaterNow = "Water Now!"
	StatusSoon     = "Soon"
	StatusOnTrack  = "On Track"

	// ReminderWindowDays bounds the upcoming reminders list.
	ReminderWindowDays = 3
	// NotifyWindowDays bounds the entries that trigger a notification.
	NotifyWindowDays = 1

	DateLayout = "Jan 2, 2006"

	day = 24 * time.Hour
)

// Classification is the derived watering state of one entry.
type Classification struct {
	DaysUntil int    `json:"daysUntil"`
	Status    string `json:"status"`
	Class     string `json:"statusClass"`
}

// DaysUntil rounds the time left before next up to whole days, so anything
// due later today counts as 1 and anything already past counts as <= 0.
func DaysUntil(next, now time.Time) int {
	return int(math.Ceil(float64(next.Sub(now)) / float64(day)))
}

func Classify(e models.GardenEntry, now time.Time) Classification {
	days := DaysUntil(e.NextWatering, now)
	switch {
	case days <= 0:
		return Classification{DaysUntil: days, Status: StatusWaterNow, Class: "status-urgent"}
	case days <= 2:
		return Classification{DaysUntil: days, Status: StatusSoon, Class: "status-warning"}
	default:
		return Classification{DaysUntil: days, Status: StatusOnTrack, Class: "status-good"}
	}
}

// Row is one line of the schedule table.
type Row struct {
	Index int                `json:"index"`
	Entry models.GardenEntry `json:"entry"`
	Classification
}

func Rows(entries []models.GardenEntry, now time.Time) []Row {
	rows := make([]Row, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, Row{Index: i, Entry: e, Classification: Classify(e, now)})
	}
	return rows
}

// Reminder is an upcoming watering within ReminderWindowDays.
type Reminder struct {
	Index     int       `json:"index"`
	Plant     string    `json:"plant"`
	Image     string    `json:"image"`
	Date      time.Time `json:"date"`
	DaysUntil int       `json:"daysUntil"`
	Status    string    `json:"status"`
	Urgency   string    `json:"urgency"`
}

// Message is the human countdown shown on a reminder card.
func (r Reminder) Message() string {
	if r.DaysUntil <= 0 {
		return "Overdue!"
	}
	return fmt.Sprintf("%d day(s) from now", r.DaysUntil)
}

// Reminders collects entries due within ReminderWindowDays, soonest first.
// Entries due on the same day keep their garden order.
func Reminders(entries []models.GardenEntry, now time.Time) []Reminder {
	out := []Reminder{}
	for i, e := range entries {
		c := Classify(e, now)
		if c.DaysUntil > ReminderWindowDays {
			continue
		}
		out = append(out, Reminder{
			Index:     i,
			Plant:     e.Name,
			Image:     e.Image,
			Date:      e.NextWatering,
			DaysUntil: c.DaysUntil,
			Status:    c.Status,
			Urgency:   urgency(c.DaysUntil),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DaysUntil < out[j].DaysUntil })
	return out
}

func urgency(days int) string {
	switch {
	case days <= 0:
		return "reminder-urgent"
	case days <= 1:
		return "reminder-warning"
	default:
		return "reminder-normal"
	}
}

// Due returns the entries that warrant a notification, in garden order.
func Due(entries []models.GardenEntry, now time.Time) []models.GardenEntry {
	out := []models.GardenEntry{}
	for _, e := range entries {
		if DaysUntil(e.NextWatering, now) <= NotifyWindowDays {
			out = append(out, e)
		}
	}
	return out
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
