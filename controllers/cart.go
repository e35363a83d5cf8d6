package controllers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cast"

	"greenbloom/cart"
	"greenbloom/catalog"
	"greenbloom/middleware"
	"greenbloom/models"
	"greenbloom/views"
)

type cartResponse struct {
	Lines []models.CartLine `json:"lines"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

func cartData(lines []models.CartLine) views.CartData {
	return views.CartData{Lines: lines, Count: cart.Count(lines), Total: cart.Total(lines)}
}

// cartDone answers a cart mutation: JSON for script clients, otherwise a
// redirect back to the page the form was on.
func cartDone(c *fiber.Ctx, lines []models.CartLine, notice string) error {
	if wantsJSON(c) {
		return c.JSON(cartResponse{Lines: lines, Count: cart.Count(lines), Total: cart.Total(lines)})
	}
	if notice != "" {
		setNotice(c, notice)
	}
	return redirect(c, back(c, "/cart"))
}

// formInt reads an integer form field.
func formInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.FormValue(key)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return n, nil
}

// GET /cart
func (h *Handler) CartPage(c *fiber.Ctx) error {
	lines, err := h.Cart.Lines(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}
	return h.render(c, "cart", "Cart", "cart", cartData(lines))
}

// GET /cart/panel
func (h *Handler) CartPanel(c *fiber.Ctx) error {
	lines, err := h.Cart.Lines(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}
	return c.Render("cart_panel", &views.Page{Data: cartData(lines)})
}

// GET /api/cart
func (h *Handler) CartJSON(c *fiber.Ctx) error {
	lines, err := h.Cart.Lines(c.UserContext(), middleware.VisitorID(c))
	if err != nil {
		return serverError(c, err)
	}
	return c.JSON(cartResponse{Lines: lines, Count: cart.Count(lines), Total: cart.Total(lines)})
}

// POST /cart/add
func (h *Handler) AddToCart(c *fiber.Ctx) error {
	id, err := formInt(c, "product_id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	product, err := catalog.ProductByID(id)
	if errors.Is(err, catalog.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "product not found"})
	}

	lines, err := h.Cart.Add(c.UserContext(), middleware.VisitorID(c), product)
	if err != nil {
		return serverError(c, err)
	}
	return cartDone(c, lines, product.Name+" added to cart!")
}

// POST /cart/update
func (h *Handler) UpdateCart(c *fiber.Ctx) error {
	index, err := formInt(c, "index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	delta, err := formInt(c, "delta")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lines, err := h.Cart.UpdateQuantity(c.UserContext(), middleware.VisitorID(c), index, delta)
	if err != nil {
		return serverError(c, err)
	}
	return cartDone(c, lines, "")
}

// POST /cart/remove
func (h *Handler) RemoveFromCart(c *fiber.Ctx) error {
	index, err := formInt(c, "index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	lines, err := h.Cart.Remove(c.UserContext(), middleware.VisitorID(c), index)
	if err != nil {
		return serverError(c, err)
	}
	return cartDone(c, lines, "")
}

// POST /cart/clear
func (h *Handler) ClearCart(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.UserContext(), middleware.VisitorID(c)); err != nil {
		return serverError(c, err)
	}
	return cartDone(c, []models.CartLine{}, "Cart cleared!")
}
