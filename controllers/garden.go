package controllers

import (
	"github.com/gofiber/fiber/v2"

	"greenbloom/middleware"
	"greenbloom/models"
)

func (h *Handler) gardenDone(c *fiber.Ctx, entries []models.GardenEntry, notice string) error {
	if wantsJSON(c) {
		return c.JSON(h.wateringJSON(entries))
	}
	if notice != "" {
		setNotice(c, notice)
	}
	return redirect(c, back(c, "/watering"))
}

// POST /garden
func (h *Handler) AddToGarden(c *fiber.Ctx) error {
	name := c.FormValue("name")
	if name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
	}
	plant, err := h.plantByName(name)
	if err != nil {
		return plantError(c, err)
	}

	entries, err := h.Garden.Add(c.UserContext(), middleware.VisitorID(c), plant)
	if err != nil {
		return serverError(c, err)
	}
	return h.gardenDone(c, entries, plant.Name+" added to your garden!")
}

// POST /garden/water
func (h *Handler) MarkWatered(c *fiber.Ctx) error {
	index, err := formInt(c, "index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := h.Garden.MarkWatered(c.UserContext(), middleware.VisitorID(c), index)
	if err != nil {
		return serverError(c, err)
	}
	return h.gardenDone(c, entries, "")
}

// POST /garden/remove
func (h *Handler) RemoveFromGarden(c *fiber.Ctx) error {
	index, err := formInt(c, "index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entries, err := h.Garden.Remove(c.UserContext(), middleware.VisitorID(c), index)
	if err != nil {
		return serverError(c, err)
	}
	return h.gardenDone(c, entries, "")
}

// POST /garden/clear
func (h *Handler) ClearGarden(c *fiber.Ctx) error {
	if err := h.Garden.Clear(c.UserContext(), middleware.VisitorID(c)); err != nil {
		return serverError(c, err)
	}
	return h.gardenDone(c, []models.GardenEntry{}, "Garden cleared!")
}
