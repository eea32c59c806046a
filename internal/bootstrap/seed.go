package bootstrap

import (
	"context"
	"fmt"

	"github.com/zest/product-api/internal/hash"
	"github.com/zest/product-api/internal/logging"
	"github.com/zest/product-api/internal/models"
	"github.com/zest/product-api/internal/repo"
)

// Seed installs the role reference data and, when configured, a bootstrap
// admin account. Register depends on the USER role existing, so this runs
// before the server accepts traffic.
func Seed(ctx context.Context, r *repo.GormRepo, adminEmail, adminPassword, adminName string) error {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	roleUser, err := r.EnsureRole(ctx, models.RoleUser)
	if err != nil {
		return fmt.Errorf("seed USER role: %w", err)
	}
	roleAdmin, err := r.EnsureRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seed ADMIN role: %w", err)
	}

	if adminEmail == "" || adminPassword == "" {
		l.Info("bootstrap_admin_skipped", "reason", "no admin credentials configured")
		return nil
	}

	taken, err := r.EmailTaken(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("check admin email: %w", err)
	}
	if taken {
		return nil
	}

	pwHash, err := hash.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		FullName:     adminName,
		Email:        adminEmail,
		PasswordHash: pwHash,
		Enabled:      true,
		Roles:        []models.Role{*roleUser, *roleAdmin},
	}
	if err := r.CreateUser(ctx, &admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	l.Info("bootstrap_admin_created", "email", adminEmail)
	return nil
}
