package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	RedisAddr       string
	JWTSigningKey   string
	JWTIssuer       string
	AccessTokenTTL  time.Duration
	UploadDir       string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ACADEMY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - must be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("ACCESS_TOKEN_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		JWTSigningKey:   jwtSigningKey,
		JWTIssuer:       "academy",
		AccessTokenTTL:  ttl,
		UploadDir:       uploadDir,
		ShutdownTimeout: 10 * time.Second,
	}
}
