package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

var ErrNotFound = errors.New("refresh token not found")

type RefreshRepo struct {
	db database.DBTX
}

func NewRefreshRepo(db database.DBTX) *RefreshRepo {
	return &RefreshRepo{db: db}
}

func (r *RefreshRepo) Save(ctx context.Context, t *entity.RefreshToken) error {
	q := r.db.Rebind(`INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at) VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, q, t.ID, t.UserID, t.Token, t.ExpiresAt, t.CreatedAt); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

func (r *RefreshRepo) GetByToken(ctx context.Context, digest string) (*entity.RefreshToken, error) {
	q := r.db.Rebind(`SELECT id, user_id, token, expires_at, created_at FROM refresh_tokens WHERE token = ?`)
	var t entity.RefreshToken
	if err := r.db.GetContext(ctx, &t, q, digest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

// Delete removes the record by id and reports whether this call removed it.
// A false result means a concurrent caller consumed it first.
func (r *RefreshRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM refresh_tokens WHERE id = ?`), id)
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete refresh token: %w", err)
	}
	return n > 0, nil
}

// DeleteExpired purges every record whose expiry is not after now.
func (r *RefreshRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM refresh_tokens WHERE expires_at <= ?`), now)
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return res.RowsAffected()
}
