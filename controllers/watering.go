package controllers

import (
	"time"

	"github.com/gocarina/gocsv"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"greenbloom/middleware"
	"greenbloom/models"
	"greenbloom/notify"
	"greenbloom/schedule"
	"greenbloom/store"
	"greenbloom/views"
)

const (
	notificationsEnabled = "Watering reminders enabled! You will receive notifications for due plants."
	// shown when nothing can be delivered; the due plants are listed on the page instead
	notificationsInPage = "Notifications are not available. Check the reminders below for plants that need water."
)

type wateringResponse struct {
	Rows      []schedule.Row      `json:"rows"`
	Reminders []schedule.Reminder `json:"reminders"`
}

func (h *Handler) wateringData(entries []models.GardenEntry) views.WateringData {
	now := h.Now()
	return views.WateringData{
		Empty:     len(entries) == 0,
		Rows:      schedule.Rows(entries, now),
		Reminders: schedule.Reminders(entries, now),
	}
}

func (h *Handler) wateringJSON(entries []models.GardenEntry) wateringResponse {
	now := h.Now()
	return wateringResponse{Rows: schedule.Rows(entries, now), Reminders: schedule.Reminders(entries, now)}
}

// GET /watering
func (h *Handler) Watering(c *fiber.Ctx) error {
	entries, err := h.Garden.Entries(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}
	return h.render(c, "watering", "Watering Schedule", "watering", h.wateringData(entries))
}

// GET /api/garden
func (h *Handler) GardenJSON(c *fiber.Ctx) error {
	entries, err := h.Garden.Entries(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(h.wateringJSON(entries))
}

type scheduleRecord struct {
	Plant          string `csv:"plant"`
	ScientificName string `csv:"scientific_name"`
	Frequency      string `csv:"watering_frequency"`
	LastWatered    string `csv:"last_watered"`
	NextWatering   string `csv:"next_watering"`
	DaysUntil      int    `csv:"days_until"`
	Status         string `csv:"status"`
}

// GET /watering/schedule.csv
func (h *Handler) ScheduleCSV(c *fiber.Ctx) error {
	entries, err := h.Garden.Entries(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}

	records := make([]scheduleRecord, 0, len(entries))
	for _, row := range schedule.Rows(entries, h.Now()) {
		records = append(records, scheduleRecord{
			Plant:          row.Entry.Name,
			ScientificName: row.Entry.ScientificName,
			Frequency:      row.Entry.WateringFrequency,
			LastWatered:    row.Entry.AddedDate.Format(time.DateOnly),
			NextWatering:   row.Entry.NextWatering.Format(time.DateOnly),
			DaysUntil:      row.DaysUntil,
			Status:         row.Status,
		})
	}

	out, err := gocsv.MarshalBytes(&records)
	if err != nil {
		return serverError(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="watering-schedule.csv"`)
	return c.Send(out)
}

// POST /watering/notifications
//
// Sends a reminder for every plant due within a day and, when that works,
// keeps the address for the periodic sweep. Without an address or a mail
// setup, or when a send fails, only the notice changes.
func (h *Handler) EnableNotifications(c *fiber.Ctx) error {
	visitor := middleware.VisitorID(c)
	entries, err := h.Garden.Entries(c.UserContext(), visitor)
	if err != nil {
		return serverError(c, err)
	}

	email, err := notify.ValidAddress(c.FormValue("email"))
	if err != nil {
		email = ""
	}

	due := schedule.Due(entries, h.Now())
	notice := notificationsInPage
	if h.canNotify(email) {
		if _, err := notify.NotifyDue(c.UserContext(), h.Notifier, email, due); err != nil {
			zap.L().Warn("watering notification failed", zap.String("visitor", visitor), zap.Error(err))
		} else {
			optIn := []models.ReminderOptIn{{Email: email, EnabledAt: h.Now()}}
			if err := store.Save(c.UserContext(), h.Store, visitor, store.KeyReminders, optIn); err != nil {
				return serverError(c, err)
			}
			notice = notificationsEnabled
		}
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"notice": notice, "due": len(due)})
	}
	setNotice(c, notice)
	return redirect(c, back(c, "/watering"))
}

// canNotify reports whether anything could be delivered to email.
func (h *Handler) canNotify(email string) bool {
	if email == "" || h.Notifier == nil {
		return false
	}
	if n, ok := h.Notifier.(interface{ Enabled() bool }); ok {
		return n.Enabled()
	}
	return true
}
