package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

// FollowRepo persists follow edges. Insert and Delete report whether they
// changed anything, which is how concurrent callers learn the outcome.
type FollowRepo struct {
	db database.DBTX
}

func NewFollowRepo(db database.DBTX) *FollowRepo { return &FollowRepo{db: db} }

// Insert creates the edge unless it exists. The primary key on the pair
// turns a losing concurrent insert into a no-op.
func (r *FollowRepo) Insert(ctx context.Context, followerID, followeeID int64, createdAt time.Time) (bool, error) {
	q := r.db.Rebind(`INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (follower_id, followee_id) DO NOTHING`)
	res, err := r.db.ExecContext(ctx, q, followerID, followeeID, createdAt)
	if err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert follow: %w", err)
	}
	return n > 0, nil
}

func (r *FollowRepo) Delete(ctx context.Context, followerID, followeeID int64) (bool, error) {
	q := r.db.Rebind(`DELETE FROM follows WHERE follower_id = ? AND followee_id = ?`)
	res, err := r.db.ExecContext(ctx, q, followerID, followeeID)
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete follow: %w", err)
	}
	return n > 0, nil
}

func (r *FollowRepo) CountFollowers(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM follows WHERE followee_id = ?`), userID); err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return n, nil
}

func (r *FollowRepo) CountFollowing(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM follows WHERE follower_id = ?`), userID); err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}
	return n, nil
}
