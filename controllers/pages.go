package controllers

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"greenbloom/catalog"
	"greenbloom/models"
	"greenbloom/views"
)

const featuredCount = 4

// GET /
func (h *Handler) Home(c *fiber.Ctx) error {
	data := views.HomeData{Slides: views.SlideDelays(catalog.Slides())}
	if h.Plants.Err() != nil {
		data.PlantsError = catalog.LoadErrorMessage
	} else {
		data.Featured = h.Plants.Featured(featuredCount)
	}
	return h.render(c, "home", "", "home", data)
}

// GET /shop?category=tools
func (h *Handler) Shop(c *fiber.Ctx) error {
	active := models.ParseCategory(c.Query("category"))
	return h.render(c, "shop", "Shop", "shop", views.ShopData{
		Products:   catalog.Filter(catalog.Products(), active),
		Categories: append([]models.Category{models.CategoryAll}, models.Categories...),
		Active:     active,
	})
}

// GET /plants
func (h *Handler) PlantList(c *fiber.Ctx) error {
	data := views.PlantsData{}
	if h.Plants.Err() != nil {
		data.Error = catalog.LoadErrorMessage
	} else {
		data.Plants = h.Plants.All()
	}
	return h.render(c, "plants", "Plants", "plants", data)
}

// GET /plants/:name/quick-view
func (h *Handler) QuickView(c *fiber.Ctx) error {
	plant, err := h.plantByName(c.Params("name"))
	if err != nil {
		return plantError(c, err)
	}
	return h.fragment(c, "quick_view", plant.Name, "plants", views.QuickViewData{Plant: plant})
}

func (h *Handler) plantByName(raw string) (models.Plant, error) {
	if h.Plants.Err() != nil {
		return models.Plant{}, h.Plants.Err()
	}
	name, err := url.PathUnescape(raw)
	if err != nil {
		name = raw
	}
	return h.Plants.ByName(name)
}

func plantError(c *fiber.Ctx, err error) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "plant not found"})
	}
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": catalog.LoadErrorMessage})
}

// GET /api/products?category=tools
func (h *Handler) ProductsJSON(c *fiber.Ctx) error {
	return c.JSON(catalog.Filter(catalog.Products(), models.ParseCategory(c.Query("category"))))
}

// GET /api/plants
func (h *Handler) PlantsJSON(c *fiber.Ctx) error {
	if h.Plants.Err() != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": catalog.LoadErrorMessage})
	}
	return c.JSON(h.Plants.All())
}

// POST /theme
func (h *Handler) ToggleTheme(c *fiber.Ctx) error {
	next := views.ThemeDark
	if theme(c) == views.ThemeDark {
		next = views.ThemeLight
	}
	c.Cookie(&fiber.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		Expires:  h.Now().AddDate(1, 0, 0),
		SameSite: "Lax",
	})
	if wantsJSON(c) {
		return c.JSON(fiber.Map{"theme": next})
	}
	return redirect(c, back(c, "/"))
}
