package follow

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/follow/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database/databasetest"
)

type fixture struct {
	db   *sqlx.DB
	svc  *FollowService
	a, b int64
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := databasetest.Open(t)
	users := user.NewUserService(db, nil, user.BcryptHasher{Cost: bcrypt.MinCost})
	a, err := users.Register(context.Background(), "alice", "password123")
	require.NoError(t, err)
	b, err := users.Register(context.Background(), "bob", "password123")
	require.NoError(t, err)
	return fixture{db: db, svc: NewFollowService(db, users), a: a.ID, b: b.ID}
}

func (f fixture) edges(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, f.db.Get(&n, `SELECT COUNT(*) FROM follows WHERE follower_id = ? AND followee_id = ?`, f.a, f.b))
	return n
}

func TestFollow_SelfIsValidation(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Follow(context.Background(), f.a, f.a)
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = f.svc.Follow(context.Background(), 9999, 9999)
	e := apperror.From(err)
	assert.Equal(t, apperror.KindValidation, e.Kind)
	assert.Equal(t, "You cannot follow yourself", e.Message)
}

func TestFollow_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	out, err := f.svc.Follow(ctx, f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, entity.NowFollowing, out)

	out, err = f.svc.Follow(ctx, f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, entity.AlreadyFollowing, out)
	assert.Equal(t, 1, f.edges(t))

	var reverse int
	require.NoError(t, f.db.Get(&reverse, `SELECT COUNT(*) FROM follows WHERE follower_id = ?`, f.b))
	assert.Zero(t, reverse)
}

func TestFollow_Concurrent(t *testing.T) {
	f := setup(t)

	const n = 6
	outs := make([]entity.Outcome, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outs[i], errs[i] = f.svc.Follow(context.Background(), f.a, f.b)
		}(i)
	}
	wg.Wait()

	created := 0
	for i := range outs {
		require.NoError(t, errs[i])
		if outs[i] == entity.NowFollowing {
			created++
		}
	}
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, f.edges(t))
}

func TestFollow_UnknownUser(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Follow(context.Background(), f.a, 424242)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	_, err = f.svc.Unfollow(context.Background(), 424242, f.a)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUnfollow_Idempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	out, err := f.svc.Unfollow(ctx, f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, entity.NotFollowing, out)

	_, err = f.svc.Follow(ctx, f.a, f.b)
	require.NoError(t, err)
	out, err = f.svc.Unfollow(ctx, f.a, f.b)
	require.NoError(t, err)
	assert.Equal(t, entity.Unfollowed, out)
	assert.Zero(t, f.edges(t))
}

func TestStats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	_, err := f.svc.Follow(ctx, f.a, f.b)
	require.NoError(t, err)

	s, err := f.svc.Stats(ctx, f.b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Followers)
	assert.Equal(t, int64(0), s.Following)

	_, err = f.svc.Stats(ctx, 777)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestOutcomeMessage(t *testing.T) {
	assert.Equal(t, "You are now following user 3", entity.NowFollowing.Message(3))
	assert.Equal(t, "You are already following user 3", entity.AlreadyFollowing.Message(3))
	assert.Equal(t, "You unfollowed user 3", entity.Unfollowed.Message(3))
	assert.Equal(t, "You are not following user 3", entity.NotFollowing.Message(3))
}
