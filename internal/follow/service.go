package follow

import (
	"context"
	"time"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/follow/entity"
	followrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/follow/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

// FollowService owns the directed follow graph.
type FollowService struct {
	repo  *followrepo.FollowRepo
	users *user.UserService
	now   func() time.Time
}

func NewFollowService(db database.DBTX, users *user.UserService) *FollowService {
	return &FollowService{repo: followrepo.NewFollowRepo(db), users: users, now: time.Now}
}

// Follow makes followerID follow followeeID. Following someone already
// followed succeeds with AlreadyFollowing.
func (s *FollowService) Follow(ctx context.Context, followerID, followeeID int64) (entity.Outcome, error) {
	if followerID == followeeID {
		return 0, apperror.Validation("You cannot follow yourself")
	}
	if err := s.assertBoth(ctx, followerID, followeeID); err != nil {
		return 0, err
	}
	created, err := s.repo.Insert(ctx, followerID, followeeID, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if !created {
		return entity.AlreadyFollowing, nil
	}
	return entity.NowFollowing, nil
}

// Unfollow removes the edge. A missing edge succeeds with NotFollowing.
func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID int64) (entity.Outcome, error) {
	if err := s.assertBoth(ctx, followerID, followeeID); err != nil {
		return 0, err
	}
	removed, err := s.repo.Delete(ctx, followerID, followeeID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if !removed {
		return entity.NotFollowing, nil
	}
	return entity.Unfollowed, nil
}

// Stats returns follower and following counts for an existing user.
func (s *FollowService) Stats(ctx context.Context, userID int64) (*entity.Stats, error) {
	if _, err := s.users.AssertExists(ctx, userID); err != nil {
		return nil, err
	}
	followers, err := s.repo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	following, err := s.repo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &entity.Stats{UserID: userID, Followers: followers, Following: following}, nil
}

func (s *FollowService) assertBoth(ctx context.Context, followerID, followeeID int64) error {
	if _, err := s.users.AssertExists(ctx, followerID); err != nil {
		return err
	}
	_, err := s.users.AssertExists(ctx, followeeID)
	return err
}
