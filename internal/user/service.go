package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/ovaphlow/pitchfork/service-social-go/internal/apperror"
	"github.com/ovaphlow/pitchfork/service-social-go/internal/user/entity"
	userrepo "github.com/ovaphlow/pitchfork/service-social-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-social-go/pkg/database"
)

const (
	MinPasswordLength = 6
	MaxUsernameLength = 50

	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation. Cost is the configurable work factor.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// SearchCache is an optional read-through cache for Search results.
type SearchCache interface {
	Get(ctx context.Context, keyword string, limit int) ([]entity.Summary, bool, error)
	Set(ctx context.Context, keyword string, limit int, users []entity.Summary) error
	Invalidate(ctx context.Context) error
}

// UserService is the credential store: it owns user records and password checks.
type UserService struct {
	repo   *userrepo.UserRepo
	hasher PasswordHasher
	cache  SearchCache
	logger *zap.SugaredLogger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(db database.DBTX, r *userrepo.UserRepo, hasher PasswordHasher) *UserService {
	if r == nil {
		r = userrepo.NewUserRepo(db)
	}
	if hasher == nil {
		hasher = BcryptHasher{Cost: bcrypt.DefaultCost}
	}
	return &UserService{repo: r, hasher: hasher, logger: zap.NewNop().Sugar(), now: time.Now}
}

// WithSearchCache enables caching of search results.
func (s *UserService) WithSearchCache(c SearchCache, logger *zap.SugaredLogger) *UserService {
	s.cache = c
	if logger != nil {
		s.logger = logger
	}
	return s
}

// ValidateCredentials trims the username and checks both fields, returning
// the username to use.
func ValidateCredentials(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", apperror.Validation("Username is required")
	}
	if utf8.RuneCountInString(username) > MaxUsernameLength {
		return "", apperror.Unprocessable("Username must be at most 50 characters")
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return "", apperror.Unprocessable("Password must be at least 6 characters")
	}
	return username, nil
}

// Register creates a user with a hashed password. A taken username is a Conflict,
// including when another registration wins the race.
func (s *UserService) Register(ctx context.Context, username, password string) (*entity.Summary, error) {
	username, err := ValidateCredentials(username, password)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return nil, apperror.Conflict("Username already exists")
	} else if !errors.Is(err, userrepo.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperror.Unprocessable("Password must be at most 72 bytes")
		}
		return nil, apperror.Internal(err)
	}
	u, err := s.repo.Create(ctx, username, hash, s.now().UTC().Truncate(time.Microsecond))
	if err != nil {
		if errors.Is(err, userrepo.ErrDuplicate) {
			return nil, apperror.Conflict("Username already exists")
		}
		return nil, apperror.Internal(err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warnw("search cache invalidate failed", "err", err)
		}
	}
	sum := u.Summary()
	return &sum, nil
}

// Authenticate checks username and password. Unknown users and wrong
// passwords yield the same error, and both pay the cost of one hash comparison.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	username, err := ValidateCredentials(username, password)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			s.hasher.Verify(s.dummy(), password)
			return nil, apperror.Auth("Invalid credentials")
		}
		return nil, apperror.Internal(err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, apperror.Auth("Invalid credentials")
	}
	return u, nil
}

// AssertExists is the existence gate shared by the graph, post and feed services.
func (s *UserService) AssertExists(ctx context.Context, id int64) (*entity.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Internal(err)
	}
	return u, nil
}

// Search finds users by case-insensitive username substring.
// A zero limit means the default; other values are clamped to [1, 50].
func (s *UserService) Search(ctx context.Context, keyword string, limit int) ([]entity.Summary, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	limit = clampSearchLimit(limit)

	if s.cache != nil {
		users, ok, err := s.cache.Get(ctx, keyword, limit)
		if err != nil {
			s.logger.Warnw("search cache read failed", "err", err)
		} else if ok {
			return users, nil
		}
	}

	users, err := s.repo.Search(ctx, keyword, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, keyword, limit, users); err != nil {
			s.logger.Warnw("search cache write failed", "err", err)
		}
	}
	return users, nil
}

func clampSearchLimit(limit int) int {
	switch {
	case limit == 0:
		return defaultSearchLimit
	case limit < 1:
		return 1
	case limit > maxSearchLimit:
		return maxSearchLimit
	}
	return limit
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash("timing-equalizer")
	})
	return s.dummyHash
}
