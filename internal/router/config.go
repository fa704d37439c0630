package router

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Addr        string
	CORSOrigins []string
	Production  bool
	// RequestDeadline is a context deadline on the whole request. It is not
	// a pool acquire timeout: it also covers query time and handler work.
	RequestDeadline time.Duration
}

// ConfigFromEnv reads HTTP_ADDR, CORS_ORIGIN and APP_ENV.
func ConfigFromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:3000"
	}
	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ORIGIN"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return Config{
		Addr:        addr,
		CORSOrigins: origins,
		Production:  strings.EqualFold(os.Getenv("APP_ENV"), "production"),
	}
}
