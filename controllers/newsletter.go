package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"greenbloom/models"
	"greenbloom/notify"
	"greenbloom/store"
)

const subscribedNotice = "Thanks for subscribing to our newsletter!"

// POST /newsletter
func (h *Handler) Subscribe(c *fiber.Ctx) error {
	email, err := notify.ValidAddress(c.FormValue("email"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "a valid email is required"})
	}

	added := false
	_, err = store.Modify(c.UserContext(), h.Store, store.SiteOwner, store.KeySubscribers, func(subs []models.Subscriber) ([]models.Subscriber, error) {
		for _, s := range subs {
			if s.Email == email {
				return nil, store.ErrNoChange
			}
		}
		added = true
		return append(subs, models.Subscriber{Email: email, SubscribedAt: h.Now()}), nil
	})
	if err != nil {
		return serverError(c, err)
	}

	if added && h.Notifier != nil {
		if err := h.Notifier.Notify(c.UserContext(), notify.WelcomeMessage(email)); err != nil {
			zap.L().Debug("welcome mail not sent", zap.String("email", email), zap.Error(err))
		}
	}

	if wantsJSON(c) {
		return c.JSON(fiber.Map{"notice": subscribedNotice, "added": added})
	}
	setNotice(c, subscribedNotice)
	return redirect(c, back(c, "/"))
}
