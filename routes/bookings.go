package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
)

// SetupBookingRoutes configures all booking related routes
func SetupBookingRoutes(api fiber.Router) {
	bookings := api.Group("/bookings")
	bookings.Get("/", controllers.GetBookings)
	bookings.Post("/", controllers.CreateBooking)

	bookings.Get("/mine", middleware.Protected(), controllers.GetMyBookings)
	bookings.Post("/:id/pay", middleware.Protected(), controllers.PayBooking)
	bookings.Post("/:id/cancel", middleware.Protected(), controllers.CancelBooking)
	bookings.Post("/:id/complete", middleware.Protected(), controllers.CompleteBooking)
}
