package repo

import (
	"context"
	"fmt"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/post/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

type FeedRepo struct {
	db database.DBTX
}

func NewFeedRepo(db database.DBTX) *FeedRepo { return &FeedRepo{db: db} }

// Timeline returns posts by userID and by everyone userID follows, newest
// first with id as the tie-break. The followee set is a bound subquery.
func (r *FeedRepo) Timeline(ctx context.Context, userID int64, limit, offset int) ([]entity.Post, error) {
	q := r.db.Rebind(`SELECT p.id, p.user_id, p.content, p.created_at
		FROM posts p
		WHERE p.user_id = ?
		   OR p.user_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?`)
	out := []entity.Post{}
	if err := r.db.SelectContext(ctx, &out, q, userID, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("select timeline: %w", err)
	}
	return out, nil
}
