package feed

import (
	"context"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	feedrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/feed/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/post/entity"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

// FeedService composes a user's timeline from their own posts and the
// posts of the users they follow directly.
type FeedService struct {
	repo  *feedrepo.FeedRepo
	users *user.UserService
}

func NewFeedService(db database.DBTX, users *user.UserService) *FeedService {
	return &FeedService{repo: feedrepo.NewFeedRepo(db), users: users}
}

// GetFeed returns one page. Non-positive page means 1; non-positive limit
// means 10 and limit is capped at 50.
func (s *FeedService) GetFeed(ctx context.Context, userID int64, page, limit int) (*entity.Page, error) {
	if _, err := s.users.AssertExists(ctx, userID); err != nil {
		return nil, err
	}
	page, limit, offset := utilities.Paginate(page, limit)
	posts, err := s.repo.Timeline(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &entity.Page{Page: page, Posts: posts}, nil
}
