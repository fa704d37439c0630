package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/auth/entity"
	authrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/auth/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	userentity "github.com/ovaphlow/pitchfork/service-social-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

const refreshTokenBytes = 48

// AuthService is the token manager: login, refresh-token rotation and
// access-token verification.
type AuthService struct {
	db      *sqlx.DB
	users   *user.UserService
	refresh *authrepo.RefreshRepo
	signer  *TokenSigner
	ids     *utilities.IDGenerator
	logger  *zap.SugaredLogger

	refreshTTL time.Duration
	now        func() time.Time
}

func NewAuthService(db *sqlx.DB, cfg Config, users *user.UserService, ids *utilities.IDGenerator, logger *zap.SugaredLogger) *AuthService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &AuthService{
		db:         db,
		users:      users,
		refresh:    authrepo.NewRefreshRepo(db),
		signer:     NewTokenSigner(cfg.Secret, cfg.AccessTTL, cfg.Issuer),
		ids:        ids,
		logger:     logger,
		refreshTTL: time.Duration(cfg.RefreshDays) * 24 * time.Hour,
		now:        time.Now,
	}
}

// Register delegates to the credential store.
func (s *AuthService) Register(ctx context.Context, username, password string) (*userentity.Summary, error) {
	return s.users.Register(ctx, username, password)
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.TokenPair, error) {
	u, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	pair, err := s.issue(ctx, s.refresh, u)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return pair, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed in the same transaction that stores its successor, so it can be
// redeemed at most once. A token that is expired or whose owner is gone is
// still consumed: the delete commits and the call fails afterwards.
func (s *AuthService) Refresh(ctx context.Context, token string) (*entity.TokenPair, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperror.Validation("Refresh token is required")
	}
	digest := digestToken(token)

	var (
		pair    *entity.TokenPair
		revoked *apperror.Error
	)
	err := database.WithTx(ctx, s.db, nil, func(ctx context.Context, tx database.DBTX) error {
		tokens := authrepo.NewRefreshRepo(tx)
		rec, err := tokens.GetByToken(ctx, digest)
		if err != nil {
			if errors.Is(err, authrepo.ErrNotFound) {
				return apperror.Auth("Invalid refresh token")
			}
			return err
		}
		removed, err := tokens.Delete(ctx, rec.ID)
		if err != nil {
			return err
		}
		if !removed {
			return apperror.Auth("Invalid refresh token")
		}
		if rec.Expired(s.now()) {
			revoked = apperror.Auth("Refresh token expired")
			return nil
		}
		u, err := userrepo.NewUserRepo(tx).GetByID(ctx, rec.UserID)
		if err != nil {
			if errors.Is(err, userrepo.ErrNotFound) {
				revoked = apperror.NotFound("User not found")
				return nil
			}
			return err
		}
		pair, err = s.issue(ctx, tokens, u)
		return err
	})
	if err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}
	if revoked != nil {
		return nil, revoked
	}
	return pair, nil
}

// Authenticate resolves a bearer access token to its principal.
func (s *AuthService) Authenticate(token string) (*Principal, error) {
	p, err := s.signer.Verify(token)
	if err != nil {
		return nil, apperror.Auth("Invalid or expired token")
	}
	return p, nil
}

// PurgeExpired deletes refresh tokens that can no longer be redeemed.
func (s *AuthService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.refresh.DeleteExpired(ctx, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (s *AuthService) issue(ctx context.Context, tokens *authrepo.RefreshRepo, u *userentity.User) (*entity.TokenPair, error) {
	now := s.now().UTC().Truncate(time.Microsecond)
	access, err := s.signer.Issue(u.ID, u.Username, now)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	raw, err := newRefreshValue()
	if err != nil {
		return nil, err
	}
	rec := &entity.RefreshToken{
		ID:        s.ids.Next(),
		UserID:    u.ID,
		Token:     digestToken(raw),
		ExpiresAt: now.Add(s.refreshTTL),
		CreatedAt: now,
	}
	if err := tokens.Save(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Debugw("refresh token issued", "user_id", u.ID, "token_id", rec.ID)
	return &entity.TokenPair{AccessToken: access, RefreshToken: raw}, nil
}

func newRefreshValue() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func digestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
