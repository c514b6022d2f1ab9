// Command seed applies the database migrations and inserts the baseline
// rows: the three roles and an initial admin account.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"golang.org/x/crypto/bcrypt"

	"academy/db"
	"academy/internal/platform/config"
	"academy/internal/platform/logger"
	"academy/internal/platform/postgres"
)

const defaultAdminEmail = "admin@example.com"

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Server, log *slog.Logger) error {
	conn, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log.Info("migrations applied")

	for _, role := range []string{"admin", "trainer", "user"} {
		if _, err := conn.ExecContext(ctx,
			"INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", role,
		); err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = defaultAdminEmail
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "AdminPassword123!"
		log.Warn("ADMIN_PASSWORD not set, using the default development password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	res, err := conn.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, display_name, role_id, created_at, updated_at)
		SELECT $1, $2, $3, 'Administrator', r.id, $4, $4
		FROM roles r
		WHERE r.name = 'admin'
		  AND NOT EXISTS (SELECT 1 FROM users u WHERE lower(u.email) = lower($2))`,
		uuid.New(), adminEmail, string(hash), now,
	)
	if err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected > 0 {
		log.Info("admin account created", "email", adminEmail)
	} else {
		log.Info("admin account already present", "email", adminEmail)
	}
	return nil
}
