package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/meinhoongagan/homeconnect-pro/controllers"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
)

// SetupAuthRoutes configures all authentication related routes
func SetupAuthRoutes(app *fiber.App) {
	// Throttled per IP to slow credential stuffing
	auth := app.Group("/auth", limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
	}))

	// Public routes
	auth.Post("/signup", controllers.Signup)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetCurrentUser)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
