package models

import (
	"time"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// UserSummary is the nested shape embedded in task and profile responses.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TaskDetail is a task with its creator and assignee resolved.
type TaskDetail struct {
	ID          int          `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      string       `json:"status"`
	Priority    string       `json:"priority"`
	Deadline    *Date        `json:"deadline"`
	CreatedBy   UserSummary  `json:"created_by"`
	AssignedTo  *UserSummary `json:"assigned_to"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
