package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/post/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

var ErrNotFound = errors.New("post not found")

type PostRepo struct {
	db database.DBTX
}

func NewPostRepo(db database.DBTX) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, userID int64, content string, createdAt time.Time) (*entity.Post, error) {
	q := r.db.Rebind(`INSERT INTO posts (user_id, content, created_at) VALUES (?, ?, ?) RETURNING id`)
	p := &entity.Post{UserID: userID, Content: content, CreatedAt: createdAt}
	if err := r.db.GetContext(ctx, &p.ID, q, userID, content, createdAt); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return p, nil
}

func (r *PostRepo) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	q := r.db.Rebind(`SELECT id, user_id, content, created_at FROM posts WHERE id = ?`)
	var p entity.Post
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}
	return &p, nil
}

// ListByUser returns one author's posts, newest first, ties broken by id.
func (r *PostRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]entity.Post, error) {
	q := r.db.Rebind(`SELECT id, user_id, content, created_at FROM posts
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`)
	out := []entity.Post{}
	if err := r.db.SelectContext(ctx, &out, q, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}
