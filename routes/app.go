package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/meinhoongagan/homeconnect-pro/config"
	"github.com/meinhoongagan/homeconnect-pro/logger"
	"github.com/meinhoongagan/homeconnect-pro/middleware"
	"github.com/meinhoongagan/homeconnect-pro/utils"
)

// NewApp builds the fiber application with every route registered.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "HomeConnect Pro",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return utils.Fail(c, fe.Code, fe.Message)
			}
			logger.Log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
			return utils.Fail(c, fiber.StatusInternalServerError, "Internal Server Error")
		},
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	api := app.Group("/api")

	SetupAuthRoutes(app)
	SetupHomeRoutes(app, api)
	SetupBookingRoutes(api)
	SetupContractorRoutes(api)
	SetupDisputeRoutes(api)
	SetupJobRoutes(api)

	return app
}
