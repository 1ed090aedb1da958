package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/meinhoongagan/homeconnect-pro/db"
)

func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "homeconnect-pro"})
}

// Ready reports whether the database answers a ping.
func Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "not_ready", "error": "db unreachable"})
	}
	return c.JSON(fiber.Map{"status": "ready"})
}
