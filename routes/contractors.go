package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
)

func SetupContractorRoutes(api fiber.Router) {
	contractors := api.Group("/contractors")
	contractors.Get("/", controllers.GetContractors)
	contractors.Get("/:id", controllers.GetContractor)
	contractors.Post("/:id/book", middleware.Protected(), controllers.BookContractor)
	contractors.Post("/:id/image", middleware.Protected(), controllers.UploadContractorImage)

	api.Get("/time-slots", controllers.GetTimeSlots)
}
