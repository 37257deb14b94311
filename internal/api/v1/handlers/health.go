package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Health is the unauthenticated liveness check.
func Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Hello from taskhub!",
	})
}
