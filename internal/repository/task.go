package repository

import (
	"database/sql"

	"taskhub/internal/models"
)

const taskDetailColumns = `
    t.id, t.title, t.description, t.status, t.priority, t.deadline,
    c.id, c.username, COALESCE(c.email, ''),
    a.id, a.username, a.email,
    t.created_at, t.updated_at
FROM tasks t
JOIN users c ON c.id = t.created_by
LEFT JOIN users a ON a.id = t.assigned_to`

type CreateTaskParams struct {
	CreatedBy   int
	AssignedTo  *int
	Title       string
	Description string
	Status      string
	Priority    string
	Deadline    *models.Date
}

// UpdateTaskParams carries a partial update; nil fields keep their
// current value.
type UpdateTaskParams struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	Deadline    *models.Date
	AssignedTo  *int
}

func CreateTask(db *sql.DB, p CreateTaskParams) (int, error) {
	var taskID int
	err := db.QueryRow(
		`INSERT INTO tasks (created_by, assigned_to, title, description, status, priority, deadline)
         VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		p.CreatedBy, p.AssignedTo, p.Title, p.Description, p.Status, p.Priority, deadlineArg(p.Deadline),
	).Scan(&taskID)
	return taskID, err
}

// ListTasksForUser returns every task the user created or is assigned to,
// newest first.
func ListTasksForUser(db *sql.DB, userID int) ([]models.TaskDetail, error) {
	rows, err := db.Query(
		"SELECT"+taskDetailColumns+`
WHERE t.created_by = $1 OR t.assigned_to = $1
ORDER BY t.created_at DESC, t.id DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.TaskDetail{}
	for rows.Next() {
		task, err := scanTaskDetail(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func GetTaskDetail(db *sql.DB, taskID int) (models.TaskDetail, error) {
	row := db.QueryRow("SELECT"+taskDetailColumns+" WHERE t.id = $1", taskID)
	return scanTaskDetail(row)
}

// UpdateTask applies a partial update to a task owned by createdBy and bumps
// updated_at. Returns false when no such task exists for that creator.
func UpdateTask(db *sql.DB, taskID, createdBy int, p UpdateTaskParams) (bool, error) {
	res, err := db.Exec(
		`UPDATE tasks SET
            title = COALESCE($1, title),
            description = COALESCE($2, description),
            status = COALESCE($3, status),
            priority = COALESCE($4, priority),
            deadline = COALESCE($5, deadline),
            assigned_to = COALESCE($6, assigned_to),
            updated_at = CURRENT_TIMESTAMP
         WHERE id = $7 AND created_by = $8`,
		p.Title, p.Description, p.Status, p.Priority, deadlineArg(p.Deadline), p.AssignedTo, taskID, createdBy,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

// DeleteTask removes a task owned by createdBy. Returns false when the task
// does not exist or belongs to someone else.
func DeleteTask(db *sql.DB, taskID, createdBy int) (bool, error) {
	res, err := db.Exec("DELETE FROM tasks WHERE id = $1 AND created_by = $2", taskID, createdBy)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTaskDetail(row rowScanner) (models.TaskDetail, error) {
	var task models.TaskDetail
	var deadline sql.NullTime
	var assigneeID sql.NullInt64
	var assigneeName, assigneeEmail sql.NullString

	err := row.Scan(
		&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority, &deadline,
		&task.CreatedBy.ID, &task.CreatedBy.Username, &task.CreatedBy.Email,
		&assigneeID, &assigneeName, &assigneeEmail,
		&task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return models.TaskDetail{}, err
	}

	if deadline.Valid {
		task.Deadline = &models.Date{Time: deadline.Time}
	}
	if assigneeID.Valid {
		task.AssignedTo = &models.UserSummary{
			ID:       int(assigneeID.Int64),
			Username: assigneeName.String,
			Email:    assigneeEmail.String,
		}
	}
	return task, nil
}

// deadlineArg unwraps the optional date so the driver sees NULL, not a
// typed nil.
func deadlineArg(d *models.Date) interface{} {
	if d == nil {
		return nil
	}
	return d.Time
}
