package handlers

import (
	"taskhub/internal/config"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// SearchUsers returns users whose username starts with the search prefix,
// case-insensitively. An empty prefix returns all users, capped by limit.
func SearchUsers(c *fiber.Ctx) error {
	prefix := c.Query("search")
	limit := c.QueryInt("limit", defaultSearchLimit)
	if limit < 1 || limit > maxSearchLimit {
		limit = defaultSearchLimit
	}

	users, err := repository.SearchUsers(config.DB, prefix, limit)
	if err != nil {
		logger.ErrorLogger.Error("Error searching users", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error searching users",
			"success": false,
			"status":  500,
		})
	}

	logger.AuditLogger.Info("Users searched", zap.String("prefix", prefix), zap.Int("matches", len(users)))
	return c.JSON(fiber.Map{
		"message": "Users fetched successfully",
		"success": true,
		"status":  200,
		"data":    users,
	})
}
