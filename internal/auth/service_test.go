package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database/databasetest"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

func newAuthService(t *testing.T) (*AuthService, *sqlx.DB) {
	t.Helper()
	db := databasetest.Open(t)
	users := user.NewUserService(db, nil, user.BcryptHasher{Cost: bcrypt.MinCost})
	ids, err := utilities.NewIDGenerator(1)
	require.NoError(t, err)
	cfg := Config{Secret: []byte("test-secret"), AccessTTL: time.Hour, RefreshDays: 7}
	return NewAuthService(db, cfg, users, ids, nil), db
}

func registerAndLogin(t *testing.T, svc *AuthService) (int64, string) {
	t.Helper()
	ctx := context.Background()
	u, err := svc.Register(ctx, "alice", "password123")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.Len(t, pair.RefreshToken, 2*refreshTokenBytes)
	return u.ID, pair.RefreshToken
}

func TestLogin_IssuesUsableAccessToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	id, _ := registerAndLogin(t, svc)

	pair, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	p, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "alice", p.Username)

	_, err = svc.Login(ctx, "alice", "wrong-password")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestRefresh_StoresDigestOnly(t *testing.T) {
	svc, db := newAuthService(t)
	_, raw := registerAndLogin(t, svc)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM refresh_tokens WHERE token = ?`, raw))
	assert.Zero(t, n)
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM refresh_tokens WHERE token = ?`, digestToken(raw)))
	assert.Equal(t, 1, n)
}

func TestRefresh_SingleUse(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	id, original := registerAndLogin(t, svc)

	pair, err := svc.Refresh(ctx, original)
	require.NoError(t, err)
	assert.NotEqual(t, original, pair.RefreshToken)
	p, err := svc.Authenticate(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)

	_, err = svc.Refresh(ctx, original)
	e := apperror.From(err)
	assert.Equal(t, apperror.KindAuth, e.Kind)
	assert.Equal(t, "Invalid refresh token", e.Message)

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
}

func TestRefresh_ConcurrentPresentationsRedeemOnce(t *testing.T) {
	svc, _ := newAuthService(t)
	_, original := registerAndLogin(t, svc)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Refresh(context.Background(), original)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, apperror.Is(err, apperror.KindAuth), "got %v", err)
	}
	assert.Equal(t, 1, ok)
}

func TestRefresh_ExpiredIsPurged(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()
	_, raw := registerAndLogin(t, svc)

	svc.now = func() time.Time { return time.Now().Add(8 * 24 * time.Hour) }

	_, err := svc.Refresh(ctx, raw)
	e := apperror.From(err)
	assert.Equal(t, apperror.KindAuth, e.Kind)
	assert.Equal(t, "Refresh token expired", e.Message)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM refresh_tokens`))
	assert.Zero(t, n)

	_, err = svc.Refresh(ctx, raw)
	assert.Equal(t, "Invalid refresh token", apperror.From(err).Message)
}

func TestRefresh_OwnerGoneConsumesToken(t *testing.T) {
	svc, db := newAuthService(t)
	ctx := context.Background()
	id, raw := registerAndLogin(t, svc)

	// drop the owner without cascading so the token row survives
	_, err := db.Exec(`PRAGMA foreign_keys = OFF`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM users WHERE id = ?`, id)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, raw)
	e := apperror.From(err)
	assert.Equal(t, apperror.KindNotFound, e.Kind)
	assert.Equal(t, "User not found", e.Message)

	var n int
	require.NoError(t, db.Get(&n, `SELECT COUNT(*) FROM refresh_tokens`))
	assert.Zero(t, n)

	_, err = svc.Refresh(ctx, raw)
	assert.Equal(t, "Invalid refresh token", apperror.From(err).Message)
}

func TestRefresh_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Refresh(context.Background(), "  ")
	e := apperror.From(err)
	assert.Equal(t, apperror.KindValidation, e.Kind)
	assert.Equal(t, 400, e.Status)

	_, err = svc.Refresh(context.Background(), "unknown")
	assert.True(t, apperror.Is(err, apperror.KindAuth))
}

func TestPurgeExpired(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()
	registerAndLogin(t, svc)

	n, err := svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	svc.now = func() time.Time { return time.Now().Add(30 * 24 * time.Hour) }
	n, err = svc.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
