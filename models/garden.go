package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// GardenEntry is a plant the visitor tracks in their watering schedule.
type GardenEntry struct {
	Plant
	AddedDate    time.Time `json:"addedDate"`
	NextWatering time.Time `json:"nextWatering"`
}

func (e GardenEntry) Validate() error {
	if err := e.Plant.Validate(); err != nil {
		return err
	}
	if e.NextWatering.IsZero() {
		return errors.New("garden entry needs a next watering date")
	}
	return nil
}

// UnmarshalJSON accepts any common date layout for the two timestamps, so
// entries saved by older clients (ISO strings, "2006-01-02", ...) still load.
func (e *GardenEntry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Plant
		AddedDate    string `json:"addedDate"`
		NextWatering string `json:"nextWatering"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	added, err := parseTimestamp(raw.AddedDate)
	if err != nil {
		return fmt.Errorf("addedDate: %w", err)
	}
	next, err := parseTimestamp(raw.NextWatering)
	if err != nil {
		return fmt.Errorf("nextWatering: %w", err)
	}

	e.Plant = raw.Plant
	e.AddedDate = added
	e.NextWatering = next
	return nil
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(s)
}
