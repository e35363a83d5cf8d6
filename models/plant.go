package models

import (
	"errors"
	"strings"
)

type Plant struct {
	Name              string `json:"name"`
	ScientificName    string `json:"scientificName"`
	Type              string `json:"type"`
	WateringFrequency string `json:"wateringFrequency"`
	Sunlight          string `json:"sunlight"`
	Soil              string `json:"soil"`
	Image             string `json:"image"`
	Description       string `json:"description"`
	IsNew             bool   `json:"isNew,omitempty"`
	IsPopular         bool   `json:"isPopular,omitempty"`
}

func (p Plant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("plant name is required")
	}
	return nil
}
