package post

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/post/entity"
	postrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/post/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/utilities"
)

type PostService struct {
	repo  *postrepo.PostRepo
	users *user.UserService
	now   func() time.Time
}

func NewPostService(db database.DBTX, users *user.UserService) *PostService {
	return &PostService{repo: postrepo.NewPostRepo(db), users: users, now: time.Now}
}

// Create stores trimmed content for an existing author.
// Length is counted in characters, not bytes.
func (s *PostService) Create(ctx context.Context, userID int64, content string) (*entity.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}
	if utf8.RuneCountInString(content) > entity.MaxContentLength {
		return nil, apperror.Unprocessable("Content must be at most 200 characters")
	}
	if _, err := s.users.AssertExists(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.repo.Create(ctx, userID, content, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		if errors.Is(err, postrepo.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrNotFound) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, apperror.Internal(err)
	}
	return p, nil
}

// ListByUser pages through one author's posts with the feed's clamping rules.
func (s *PostService) ListByUser(ctx context.Context, userID int64, page, limit int) (*entity.Page, error) {
	if _, err := s.users.AssertExists(ctx, userID); err != nil {
		return nil, err
	}
	page, limit, offset := utilities.Paginate(page, limit)
	posts, err := s.repo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &entity.Page{Page: page, Posts: posts}, nil
}
