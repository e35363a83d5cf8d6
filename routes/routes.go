package routes

import (
	"github.com/gofiber/fiber/v2"

	"greenbloom/controllers"
	"greenbloom/controllers/popular"
)

func RegisterRoutes(app *fiber.App, h *controllers.Handler) {

	// pages
	app.Get("/", h.Home)
	app.Get("/shop", h.Shop)
	app.Get("/plants", h.PlantList)
	app.Get("/plants/:name/quick-view", h.QuickView)

	// cart
	app.Get("/cart", h.CartPage)
	app.Get("/cart/panel", h.CartPanel)
	app.Post("/cart/add", h.AddToCart)
	app.Post("/cart/update", h.UpdateCart)
	app.Post("/cart/remove", h.RemoveFromCart)
	app.Post("/cart/clear", h.ClearCart)

	// watering schedule
	app.Get("/watering", h.Watering)
	app.Get("/watering/schedule.csv", h.ScheduleCSV)
	app.Post("/watering/notifications", h.EnableNotifications)

	// garden
	app.Post("/garden", h.AddToGarden)
	app.Post("/garden/water", h.MarkWatered)
	app.Post("/garden/remove", h.RemoveFromGarden)
	app.Post("/garden/clear", h.ClearGarden)

	// chat
	app.Get("/chat", h.ChatTranscript)
	app.Post("/chat", h.ChatSubmit)

	app.Post("/theme", h.ToggleTheme)
	app.Post("/newsletter", h.Subscribe)

	// json
	api := app.Group("/api")
	api.Get("/products", h.ProductsJSON)
	api.Get("/plants", h.PlantsJSON)
	api.Get("/hero-slider", popular.HeroSlider)
	api.Get("/cart", h.CartJSON)
	api.Get("/garden", h.GardenJSON)

	app.Get("/health", h.Health)
}
