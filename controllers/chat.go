package controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"greenbloom/middleware"
	"greenbloom/views"
)

// GET /chat
func (h *Handler) ChatTranscript(c *fiber.Ctx) error {
	visitor := middleware.VisitorID(c)
	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"messages": h.Chat.Transcript(visitor),
			"pending":  h.Chat.Pending(visitor),
		})
	}
	return c.Render("chat_body", &views.Page{
		Chat:        h.Chat.Transcript(visitor),
		ChatPending: h.Chat.Pending(visitor),
	})
}

// POST /chat
func (h *Handler) ChatSubmit(c *fiber.Ctx) error {
	visitor := middleware.VisitorID(c)
	accepted := h.Chat.Submit(visitor, c.FormValue("message"))
	if wantsJSON(c) {
		return c.JSON(fiber.Map{
			"accepted": accepted,
			"messages": h.Chat.Transcript(visitor),
		})
	}
	return redirect(c, withChatOpen(back(c, "/")))
}

func withChatOpen(to string) string {
	u, err := url.Parse(to)
	if err != nil {
		return "/?chat=open"
	}
	q := u.Query()
	q.Set("chat", "open")
	u.RawQuery = q.Encode()
	return u.String()
}
