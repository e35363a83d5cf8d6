package models

import "time"

type Subscriber struct {
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

// ReminderOptIn records that a visitor asked for watering reminders by email.
type ReminderOptIn struct {
	Email     string    `json:"email"`
	EnabledAt time.Time `json:"enabledAt"`
}
