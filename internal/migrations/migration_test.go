package migrations

import (
	"testing"

	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/logger"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"
	"seaside_restaurant/pkg/mailer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, services.UserService) {
	t.Helper()
	db, err := database.OpenTest()
	require.NoError(t, err)

	log := logger.Discard().Logger
	users := services.NewUserService(
		repository.NewUserRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewPasswordResetRepository(db),
		mailer.Disabled{}, nil, services.AuthSettings{}, log,
	)
	return db, users
}

func TestRunMigrations_SeedsAdminOnce(t *testing.T) {
	db, users := setup(t)
	seed := AdminSeed{Username: "owner", Password: "harbour9", Email: "owner@seaside.test"}
	log := logger.Discard().Logger

	require.NoError(t, RunMigrations(db, users, seed, log))
	require.NoError(t, RunMigrations(db, users, seed, log))

	var admins []models.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].Owner())

	owner, err := users.OwnerLogin("owner", "harbour9")
	require.NoError(t, err)
	assert.Equal(t, admins[0].ID, owner.ID)
}

func TestRunMigrations_SkipsSeedWithoutPassword(t *testing.T) {
	db, users := setup(t)

	require.NoError(t, RunMigrations(db, users, AdminSeed{Username: "owner"}, logger.Discard().Logger))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
