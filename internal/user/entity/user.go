package entity

import "time"

// User represents an account row in the `users` table.
// PasswordHash is never serialized outward.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Summary is the public projection returned by registration and search.
type Summary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Username: u.Username}
}
