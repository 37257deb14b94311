package repository

import (
	"database/sql"
	"strings"

	"taskhub/internal/models"
)

// InsertUser persists a new user and returns its id. Unique-violation errors
// bubble up unwrapped so callers can map them to a conflict response.
func InsertUser(db *sql.DB, username, email, passwordHash string) (int, error) {
	var userID int
	err := db.QueryRow(
		"INSERT INTO users (username, email, password) VALUES ($1, NULLIF($2, ''), $3) RETURNING id",
		username, email, passwordHash,
	).Scan(&userID)
	return userID, err
}

func FindUserByUsername(db *sql.DB, username string) (int, string, error) {
	var id int
	var passwordHash string
	err := db.QueryRow(
		"SELECT id, password FROM users WHERE username = $1",
		username,
	).Scan(&id, &passwordHash)
	return id, passwordHash, err
}

func UserExists(db *sql.DB, id int) (bool, error) {
	var exists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// SearchUsers returns users whose username starts with prefix,
// case-insensitively. An empty prefix matches everyone.
func SearchUsers(db *sql.DB, prefix string, limit int) ([]models.UserSummary, error) {
	rows, err := db.Query(
		"SELECT id, username, COALESCE(email, '') FROM users WHERE username ILIKE $1 ORDER BY username LIMIT $2",
		escapeLike(prefix)+"%", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// escapeLike neutralizes LIKE metacharacters so the prefix is matched literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
