package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
)

func SetupJobRoutes(api fiber.Router) {
	jobs := api.Group("/jobs")
	jobs.Post("/", controllers.CreateJob)
	jobs.Post("/analyze", middleware.Protected(), controllers.AnalyzeJob)
}
