package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
)

// SetupHomeRoutes configures the landing page data and probes
func SetupHomeRoutes(app *fiber.App, api fiber.Router) {
	app.Get("/health", controllers.Health)
	app.Get("/ready", controllers.Ready)

	api.Get("/stats", controllers.GetStats)
	api.Get("/services", controllers.GetServiceCategories)
}
