package views

import (
	"net/url"

	"greenbloom/models"
	"greenbloom/schedule"
)

type HomeData struct {
	Slides      []SlideView
	Featured    []models.Plant
	PlantsError string
}

type ShopData struct {
	Products   []models.Product
	Categories []models.Category
	Active     models.Category
}

// Back is where an add-to-cart from this grid returns to.
func (d ShopData) Back() string {
	if d.Active == "" {
		return "/shop"
	}
	return "/shop?category=" + url.QueryEscape(string(d.Active))
}

// ProductCard is a product rendered on a grid that knows its way back.
type ProductCard struct {
	models.Product
	Back string
}

type PlantsData struct {
	Plants []models.Plant
	Error  string
}

type QuickViewData struct {
	Plant models.Plant
}

type CartData struct {
	Lines []models.CartLine
	Count int
	Total float64
}

// WateringData backs the schedule page. Empty means the garden has no
// entries at all, which replaces both the table and the reminders.
type WateringData struct {
	Empty     bool
	Rows      []schedule.Row
	Reminders []schedule.Reminder
}
