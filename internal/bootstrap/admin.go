// Package bootstrap handles one-time initialization tasks for the application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopeasy/shopeasy/internal/auth"
	"github.com/shopeasy/shopeasy/internal/domain"
)

// AdminConfig contains configuration for the initial admin account.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// Validate checks that the admin configuration is usable.
func (c *AdminConfig) Validate() error {
	if c.Email == "" {
		return errors.New("admin email is required")
	}
	if c.Password == "" {
		return errors.New("admin password is required")
	}
	if len(c.Password) < 12 {
		return errors.New("admin password must be at least 12 characters")
	}
	return nil
}

// EnsureAdmin creates the initial admin account if it doesn't exist.
// Idempotent, safe to call on every startup.
//
// If cfg is nil or has an empty email or password, it logs a warning and
// skips so dev environments can run without an admin.
func EnsureAdmin(ctx context.Context, users domain.UserStore, cfg *AdminConfig, logger *slog.Logger) error {
	if cfg == nil || cfg.Email == "" || cfg.Password == "" {
		logger.Warn("bootstrap: skipping admin creation - ADMIN_EMAIL or ADMIN_PASSWORD not set",
			"hint", "Set these environment variables to create an admin account on first startup",
		)
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid admin configuration: %w", err)
	}

	existing, err := users.GetByEmail(ctx, cfg.Email)
	if err == nil && existing != nil {
		logger.Info("bootstrap: admin account already exists", "email", cfg.Email)
		return nil
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("failed to check for existing admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Admin"
	}

	user, err := users.Create(ctx, domain.CreateUserParams{
		Name:         name,
		Email:        cfg.Email,
		PasswordHash: passwordHash,
		Role:         domain.RoleAdmin,
	})
	if err != nil {
		// A concurrent startup may have won the race.
		if errors.Is(err, domain.ErrEmailTaken) {
			logger.Info("bootstrap: admin account already exists (concurrent creation)", "email", cfg.Email)
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logger.Info("bootstrap: admin account created",
		"email", cfg.Email,
		"user_id", user.ID,
	)
	return nil
}
