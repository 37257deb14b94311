package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/repository"
	"taskhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileResponse is the body of GET /profile/. ProfilePicture is null
// until a picture has been uploaded.
type ProfileResponse struct {
	ID             int     `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profile_picture"`
}

func profileCacheKey(userID int) string {
	return fmt.Sprintf("profile:%d", userID)
}

func validatePicture(file *multipart.FileHeader) error {
	if file.Size > config.MaxUploadBytes {
		return fiber.NewError(fiber.StatusBadRequest, "File too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true}
	if !allowedExts[ext] {
		return fiber.NewError(fiber.StatusBadRequest, "File type not allowed")
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.Contains(contentType, "image") {
		return fiber.NewError(fiber.StatusBadRequest, "File must be an image")
	}

	return nil
}

// UploadProfilePicture stores a new picture and swaps it in as the user's
// single active one. The new file is written first and the old file removed
// only after the profile row points at the new one, so a crash mid-sequence
// can orphan a file but never break the stored reference.
func UploadProfilePicture(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	file, err := c.FormFile("profile_picture")
	if err != nil {
		logger.ErrorLogger.Error("Error reading uploaded file", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Missing profile_picture file",
			"success": false,
			"status":  400,
		})
	}

	if err := validatePicture(file); err != nil {
		logger.AuditLogger.Warn("Rejected profile picture", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": err.Error(),
			"success": false,
			"status":  400,
		})
	}

	newFilename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))

	src, err := file.Open()
	if err != nil {
		logger.ErrorLogger.Error("Error opening uploaded file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error saving file",
			"success": false,
			"status":  500,
		})
	}
	defer src.Close()

	if err := config.Files.Store(newFilename, src); err != nil {
		logger.ErrorLogger.Error("Error saving file", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error saving file",
			"success": false,
			"status":  500,
		})
	}

	old, err := repository.ReplacePicture(config.DB, userID, newFilename)
	if err != nil {
		// Compensate: the row was not updated, drop the new file.
		if delErr := config.Files.Delete(newFilename); delErr != nil {
			logger.ErrorLogger.Error("Error removing orphaned file", zap.Error(delErr))
		}
		logger.ErrorLogger.Error("Error updating profile picture", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating profile picture",
			"success": false,
			"status":  500,
		})
	}

	if old.Valid && old.String != newFilename {
		if err := config.Files.Delete(old.String); err != nil {
			logger.ErrorLogger.Error("Error removing previous picture", zap.Error(err))
		}
	}

	config.RedisClient.Del(config.Ctx, profileCacheKey(userID))

	fileURL := config.Files.URLFor(newFilename)
	logger.AuditLogger.Info("Profile picture uploaded",
		zap.Int("user_id", userID), zap.String("filename", newFilename))
	return c.JSON(fiber.Map{
		"message": "Profile picture uploaded successfully",
		"success": true,
		"status":  200,
		"data": fiber.Map{
			"profile_picture": fileURL,
		},
	})
}

// GetProfile returns the requester's identity and picture URL.
func GetProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	cacheKey := profileCacheKey(userID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var profile ProfileResponse
		if err = json.Unmarshal([]byte(cached), &profile); err == nil {
			return c.JSON(fiber.Map{
				"message": "Profile fetched successfully",
				"success": true,
				"status":  200,
				"data":    profile,
			})
		}
	}

	view, err := repository.GetProfileView(config.DB, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.SecurityLogger.Warn("Profile requested for missing user", zap.Int("user_id", userID))
			return c.Status(404).JSON(fiber.Map{
				"message": "Profile not found",
				"success": false,
				"status":  404,
			})
		}
		logger.ErrorLogger.Error("Error fetching profile", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching profile",
			"success": false,
			"status":  500,
		})
	}

	profile := ProfileResponse{
		ID:       view.ID,
		Username: view.Username,
		Email:    view.Email,
	}
	if view.Picture.Valid {
		url := config.Files.URLFor(view.Picture.String)
		profile.ProfilePicture = &url
	}

	if profileJSON, err := json.Marshal(profile); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, profileJSON, time.Hour)
	}

	logger.AuditLogger.Info("Profile fetched", zap.Int("user_id", userID))
	return c.JSON(fiber.Map{
		"message": "Profile fetched successfully",
		"success": true,
		"status":  200,
		"data":    profile,
	})
}
