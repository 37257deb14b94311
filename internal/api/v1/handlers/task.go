package handlers

import (
	"encoding/json"
	"fmt"
	"time"

	"taskhub/internal/config"
	"taskhub/internal/models"
	"taskhub/internal/repository"
	"taskhub/internal/ws"
	"taskhub/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Task handlers. Visibility is creator-or-assignee; mutation is
// creator-only and a miss always reads as 404 so task ids can't be probed.

func taskListCacheKey(userID int) string {
	return fmt.Sprintf("tasks:user:%d", userID)
}

// invalidateTaskCaches drops the cached task lists of every user affected
// by a mutation.
func invalidateTaskCaches(userIDs ...int) {
	seen := map[int]bool{}
	for _, id := range userIDs {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		config.RedisClient.Del(config.Ctx, taskListCacheKey(id))
	}
}

func publishTaskEvent(eventType string, taskID, actorID int) {
	if config.Events != nil {
		config.Events.Publish(ws.Event{Type: eventType, TaskID: taskID, ActorID: actorID})
	}
}

// CreateTask persists a new task created by the requester.
func CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	type TaskRequest struct {
		Title       string       `json:"title" validate:"required"`
		Description string       `json:"description"`
		Status      string       `json:"status" validate:"omitempty,oneof=pending completed"`
		Priority    string       `json:"priority" validate:"omitempty,oneof=low medium high"`
		Deadline    *models.Date `json:"deadline"`
		AssignedTo  *int         `json:"assigned_to"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
			"success": false,
			"status":  400,
		})
	}

	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if req.Priority == "" {
		req.Priority = models.PriorityMedium
	}

	if req.AssignedTo != nil {
		exists, err := repository.UserExists(config.DB, *req.AssignedTo)
		if err != nil {
			logger.ErrorLogger.Error("Error checking assigned user", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error checking assigned user",
				"success": false,
				"status":  500,
			})
		}
		if !exists {
			logger.AuditLogger.Warn("Unknown assigned user", zap.Int("assigned_to", *req.AssignedTo))
			return c.Status(400).JSON(fiber.Map{
				"message": "Assigned user does not exist",
				"success": false,
				"status":  400,
			})
		}
	}

	taskID, err := repository.CreateTask(config.DB, repository.CreateTaskParams{
		CreatedBy:   userID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating task",
			"success": false,
			"status":  500,
		})
	}

	task, err := repository.GetTaskDetail(config.DB, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching created task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching created task",
			"success": false,
			"status":  500,
		})
	}

	affected := []int{userID}
	if req.AssignedTo != nil {
		affected = append(affected, *req.AssignedTo)
	}
	invalidateTaskCaches(affected...)
	publishTaskEvent("task.created", taskID, userID)

	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", taskID))
	return c.Status(201).JSON(fiber.Map{
		"message": "Task created successfully",
		"success": true,
		"status":  201,
		"data":    task,
	})
}

// ListTasks returns every task the requester created or is assigned to,
// newest first.
func ListTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	cacheKey := taskListCacheKey(userID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		tasks := []models.TaskDetail{}
		if err = json.Unmarshal([]byte(cached), &tasks); err == nil {
			logger.AuditLogger.Info("Tasks fetched successfully (from cache)", zap.Int("user_id", userID))
			return c.JSON(fiber.Map{
				"message": "Tasks fetched successfully",
				"success": true,
				"status":  200,
				"data":    tasks,
			})
		}
	}

	tasks, err := repository.ListTasksForUser(config.DB, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching tasks",
			"success": false,
			"status":  500,
		})
	}

	if jsonData, err := json.Marshal(tasks); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, jsonData, time.Hour)
	}

	logger.AuditLogger.Info("Tasks fetched successfully", zap.Int("user_id", userID))
	return c.JSON(fiber.Map{
		"message": "Tasks fetched successfully",
		"success": true,
		"status":  200,
		"data":    tasks,
	})
}

// UpdateTask applies a partial update to a task the requester created.
func UpdateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid task ID",
			"success": false,
			"status":  400,
		})
	}

	type UpdateTaskRequest struct {
		Title       *string      `json:"title"`
		Description *string      `json:"description"`
		Status      *string      `json:"status"`
		Priority    *string      `json:"priority"`
		Deadline    *models.Date `json:"deadline"`
		AssignedTo  *int         `json:"assigned_to"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Bad request",
			"success": false,
			"status":  400,
		})
	}

	if req.Title != nil && *req.Title == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Title must not be empty",
			"success": false,
			"status":  400,
		})
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		logger.ErrorLogger.Error("Invalid status in update task")
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid status",
			"success": false,
			"status":  400,
		})
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		logger.ErrorLogger.Error("Invalid priority in update task")
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid priority",
			"success": false,
			"status":  400,
		})
	}
	if req.AssignedTo != nil {
		exists, err := repository.UserExists(config.DB, *req.AssignedTo)
		if err != nil {
			logger.ErrorLogger.Error("Error checking assigned user", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{
				"message": "Error checking assigned user",
				"success": false,
				"status":  500,
			})
		}
		if !exists {
			return c.Status(400).JSON(fiber.Map{
				"message": "Assigned user does not exist",
				"success": false,
				"status":  400,
			})
		}
	}

	// Snapshot the current assignee so their cached list is dropped too.
	var previousAssignee int
	if current, err := repository.GetTaskDetail(config.DB, taskID); err == nil && current.AssignedTo != nil {
		previousAssignee = current.AssignedTo.ID
	}

	ok, err := repository.UpdateTask(config.DB, taskID, userID, repository.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating task",
			"success": false,
			"status":  500,
		})
	}
	if !ok {
		logger.SecurityLogger.Warn("Update on missing or foreign task",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(404).JSON(fiber.Map{
			"message": "Task not found",
			"success": false,
			"status":  404,
		})
	}

	updatedTask, err := repository.GetTaskDetail(config.DB, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching updated task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching updated task",
			"success": false,
			"status":  500,
		})
	}

	affected := []int{userID, previousAssignee}
	if updatedTask.AssignedTo != nil {
		affected = append(affected, updatedTask.AssignedTo.ID)
	}
	invalidateTaskCaches(affected...)
	publishTaskEvent("task.updated", taskID, userID)

	logger.AuditLogger.Info("Task updated", zap.Int("taskID", taskID))
	return c.Status(200).JSON(fiber.Map{
		"message": "Task updated successfully",
		"success": true,
		"status":  200,
		"data":    updatedTask,
	})
}

// DeleteTask permanently removes a task the requester created.
func DeleteTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid task ID",
			"success": false,
			"status":  400,
		})
	}

	var previousAssignee int
	if current, err := repository.GetTaskDetail(config.DB, taskID); err == nil && current.AssignedTo != nil {
		previousAssignee = current.AssignedTo.ID
	}

	ok, err := repository.DeleteTask(config.DB, taskID, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting task",
			"success": false,
			"status":  500,
		})
	}
	if !ok {
		logger.SecurityLogger.Warn("Delete on missing or foreign task",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(404).JSON(fiber.Map{
			"message": "Task not found",
			"success": false,
			"status":  404,
		})
	}

	invalidateTaskCaches(userID, previousAssignee)
	publishTaskEvent("task.deleted", taskID, userID)

	logger.AuditLogger.Info("Task deleted", zap.Int("taskID", taskID))
	return c.Status(200).JSON(fiber.Map{
		"message": "Task deleted successfully",
		"success": true,
		"status":  200,
	})
}
