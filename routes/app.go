package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"greenbloom/controllers"
	"greenbloom/middleware"
	"greenbloom/views"
)

type AppOptions struct {
	AllowOrigins  string // comma separated
	StaticDir     string
	VisitorSecret string
	VisitorTTL    time.Duration
	Views         *views.Engine
}

// NewApp builds the fiber app with its middleware stack and every route.
func NewApp(h *controllers.Handler, opts AppOptions) *fiber.App {
	engine := opts.Views
	if engine == nil {
		engine = views.New()
	}
	app := fiber.New(fiber.Config{
		AppName:               "greenbloom",
		Views:                 engine,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())

	if opts.AllowOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowOrigins,
			AllowMethods:     "GET,POST,OPTIONS",
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
			ExposeHeaders:    "Set-Cookie",
			AllowCredentials: true,
		}))
	}

	if opts.StaticDir != "" {
		app.Static("/static", opts.StaticDir)
	}

	app.Use(middleware.Visitor(opts.VisitorSecret, opts.VisitorTTL))

	RegisterRoutes(app, h)
	return app
}
