package auth

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is built once at start-up and handed to NewAuthService.
type Config struct {
	Secret      []byte
	AccessTTL   time.Duration
	RefreshDays int
	BcryptCost  int
	Issuer      string
}

var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// ConfigFromEnv reads token and hashing settings. JWT_SECRET is required.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Config{}, ErrMissingSecret
	}
	ttl, err := ParseLifetime(os.Getenv("JWT_EXPIRES_IN"), 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Secret:      []byte(secret),
		AccessTTL:   ttl,
		RefreshDays: envPositive("REFRESH_TOKEN_DAYS", 7),
		BcryptCost:  envPositive("BCRYPT_SALT_ROUNDS", 10),
		Issuer:      os.Getenv("JWT_ISSUER"),
	}, nil
}

// ParseLifetime accepts Go durations ("15m", "2h"), a day count ("1d", "7d")
// or a bare number of seconds. Empty input yields def.
func ParseLifetime(v string, def time.Duration) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return def, nil
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		if n <= 0 {
			return 0, errors.New("token lifetime must be positive")
		}
		return time.Duration(n) * time.Second, nil
	}
	if days, ok := strings.CutSuffix(v, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, errors.New("invalid token lifetime " + strconv.Quote(v))
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid token lifetime " + strconv.Quote(v))
	}
	return d, nil
}

func envPositive(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return def
	}
	return n
}
