package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/user/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("username already exists")
)

// UserRepo provides data access for the users table using sqlx.
// Queries are written with ? placeholders and rebound for the driver.
type UserRepo struct {
	db database.DBTX
}

func NewUserRepo(db database.DBTX) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user unless the username is taken. The conflict clause
// makes the uniqueness check and the insert one atomic statement, so the
// loser of a concurrent registration gets ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (*entity.User, error) {
	q := r.db.Rebind(`INSERT INTO users (username, password_hash, created_at)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO NOTHING
		RETURNING id`)
	u := &entity.User{Username: username, PasswordHash: passwordHash, CreatedAt: createdAt}
	if err := r.db.GetContext(ctx, &u.ID, q, username, passwordHash, createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) || database.IsUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

// GetByUsername fetches by exact (case-sensitive) username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	q := r.db.Rebind(`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`)
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// GetByID fetches a full user row.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	q := r.db.Rebind(`SELECT id, username, password_hash, created_at FROM users WHERE id = ?`)
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// Search returns users whose lower-cased username contains keyword, ordered by username.
// keyword is expected lower-cased already; an empty keyword matches everyone.
func (r *UserRepo) Search(ctx context.Context, keyword string, limit int) ([]entity.Summary, error) {
	q := r.db.Rebind(`SELECT id, username FROM users
		WHERE LOWER(username) LIKE ? ESCAPE '\'
		ORDER BY username ASC
		LIMIT ?`)
	out := []entity.Summary{}
	if err := r.db.SelectContext(ctx, &out, q, "%"+escapeLike(keyword)+"%", limit); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return out, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
