package migrations

import (
	"errors"
	"fmt"
	"log/slog"

	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/services"

	"gorm.io/gorm"
)

// AdminSeed describes the super admin created on an empty auth_user table.
type AdminSeed struct {
	Username string
	Password string
	Email    string
}

// RunMigrations creates missing tables and columns, then seeds the default
// super admin. Existing data is never dropped.
func RunMigrations(db *gorm.DB, users services.UserService, seed AdminSeed, log *slog.Logger) error {
	log.Info("running database migrations")

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := createDefaultAdmin(users, seed, log); err != nil {
		log.Warn("failed to create default admin", "error", err)
	}

	log.Info("database migrations completed")
	return nil
}

func createDefaultAdmin(users services.UserService, seed AdminSeed, log *slog.Logger) error {
	if seed.Password == "" {
		log.Info("DEFAULT_ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	existing, err := users.GetUserByUsername(seed.Username)
	if err == nil && existing != nil {
		log.Info("super admin already exists", "username", seed.Username)
		return nil
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &models.User{
		Username:    seed.Username,
		Email:       seed.Email,
		FirstName:   "Seaside",
		LastName:    "Admin",
		IsActive:    1,
		IsStaff:     1,
		IsSuperuser: 1,
	}
	if err := users.CreateUser(admin, seed.Password); err != nil {
		return err
	}

	log.Info("super admin created", "username", admin.Username, "user_id", admin.ID)
	return nil
}
