package controllers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"greenbloom/cart"
	"greenbloom/catalog"
	"greenbloom/chat"
	"greenbloom/garden"
	"greenbloom/middleware"
	"greenbloom/notify"
	"greenbloom/store"
	"greenbloom/views"
)

const (
	noticeCookie = "notice"
	themeCookie  = "theme"
	layout       = "layout"
)

// Handler carries the engines behind every route.
type Handler struct {
	Store    *store.Store
	Cart     *cart.Engine
	Garden   *garden.Engine
	Plants   *catalog.Plants
	Chat     *chat.Hub
	Notifier notify.Notifier
	Now      func() time.Time
}

func NewHandler(s *store.Store, plants *catalog.Plants, hub *chat.Hub, n notify.Notifier, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{
		Store:    s,
		Cart:     cart.NewEngine(s),
		Garden:   garden.NewEngine(s, garden.WithClock(now)),
		Plants:   plants,
		Chat:     hub,
		Notifier: n,
		Now:      now,
	}
}

// page fills the parts of a page every template shows. It consumes the
// pending notice.
func (h *Handler) page(c *fiber.Ctx, title, active string, data any) (*views.Page, error) {
	visitor := middleware.VisitorID(c)
	lines, err := h.Cart.Lines(c.UserContext(), visitor)
	if err != nil {
		return nil, err
	}
	return &views.Page{
		Title:       title,
		Active:      active,
		Theme:       theme(c),
		Season:      views.Season(h.Now()),
		Notice:      takeNotice(c),
		CartCount:   cart.Count(lines),
		ChatOpen:    c.Query("chat") == "open",
		ChatPending: h.Chat.Pending(visitor),
		Chat:        h.Chat.Transcript(visitor),
		Path:        c.Path(),
		Data:        data,
	}, nil
}

func (h *Handler) render(c *fiber.Ctx, name, title, active string, data any) error {
	p, err := h.page(c, title, active, data)
	if err != nil {
		return serverError(c, err)
	}
	return c.Render(name, p, layout)
}

// fragment renders name alone for script clients and inside the layout
// for a normal navigation.
func (h *Handler) fragment(c *fiber.Ctx, name, title, active string, data any) error {
	if !isPartial(c) {
		return h.render(c, name, title, active, data)
	}
	return c.Render(name, &views.Page{Data: data})
}

func isPartial(c *fiber.Ctx) bool {
	return c.Query("partial") == "1" || c.Get("X-Requested-With") == "XMLHttpRequest"
}

func wantsJSON(c *fiber.Ctx) bool {
	return strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON)
}

func serverError(c *fiber.Ctx, err error) error {
	zap.L().Error("handler failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

func setNotice(c *fiber.Ctx, msg string) {
	c.Cookie(&fiber.Cookie{
		Name:     noticeCookie,
		Value:    url.QueryEscape(msg),
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// takeNotice returns the one-shot notice and clears it.
func takeNotice(c *fiber.Ctx) string {
	raw := c.Cookies(noticeCookie)
	if raw == "" {
		return ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     noticeCookie,
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	msg, err := url.QueryUnescape(raw)
	if err != nil {
		return ""
	}
	return msg
}

func theme(c *fiber.Ctx) string {
	if c.Cookies(themeCookie) == views.ThemeDark {
		return views.ThemeDark
	}
	return views.ThemeLight
}

// back is the local page a form asked to return to.
func back(c *fiber.Ctx, fallback string) string {
	to := c.FormValue("back")
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") || strings.Contains(to, "\\") {
		return fallback
	}
	return to
}

func redirect(c *fiber.Ctx, to string) error {
	return c.Redirect(to, fiber.StatusSeeOther)
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return c.SendString("ok")
}
