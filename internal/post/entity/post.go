package entity

import "time"

const MaxContentLength = 200

// Post is a short text authored by one user.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userid"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"createdat"`
}

// Page is one offset page of posts, newest first. Posts is never nil.
type Page struct {
	Page  int    `json:"page"`
	Posts []Post `json:"posts"`
}
