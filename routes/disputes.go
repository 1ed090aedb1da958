package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
)

func SetupDisputeRoutes(api fiber.Router) {
	disputes := api.Group("/disputes")
	disputes.Get("/", controllers.GetDisputes)
	disputes.Post("/", controllers.CreateDispute)

	disputes.Get("/mine", middleware.Protected(), controllers.GetMyDisputes)
	disputes.Get("/eligible", middleware.Protected(), controllers.GetDisputableBookings)
	disputes.Post("/file", middleware.Protected(), controllers.FileDispute)
}
