package repository

import (
	"database/sql"
)

// ProfileView is the joined user+profile shape behind GET /profile/.
type ProfileView struct {
	ID       int
	Username string
	Email    string
	Picture  sql.NullString
}

func GetProfileView(db *sql.DB, userID int) (ProfileView, error) {
	var view ProfileView
	err := db.QueryRow(
		`SELECT u.id, u.username, COALESCE(u.email, ''), p.picture
         FROM users u
         LEFT JOIN profiles p ON p.user_id = u.id
         WHERE u.id = $1`,
		userID,
	).Scan(&view.ID, &view.Username, &view.Email, &view.Picture)
	return view, err
}

// ReplacePicture records filename as the user's picture, creating the
// profile row on first upload. The swap happens in a transaction so the row
// never references two files; the previous filename is returned for cleanup.
func ReplacePicture(db *sql.DB, userID int, filename string) (sql.NullString, error) {
	var old sql.NullString

	tx, err := db.Begin()
	if err != nil {
		return old, err
	}
	defer tx.Rollback()

	err = tx.QueryRow("SELECT picture FROM profiles WHERE user_id = $1 FOR UPDATE", userID).Scan(&old)
	if err != nil && err != sql.ErrNoRows {
		return old, err
	}

	_, err = tx.Exec(
		`INSERT INTO profiles (user_id, picture) VALUES ($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET picture = EXCLUDED.picture, updated_at = CURRENT_TIMESTAMP`,
		userID, filename,
	)
	if err != nil {
		return old, err
	}

	return old, tx.Commit()
}
