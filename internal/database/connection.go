package database

import (
	"fmt"
	"log"
	"time"

	"seaside_restaurant/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Initialize opens the database for the given driver. Schema changes are left
// to the migrations package.
func Initialize(driver, databaseURL string) (*gorm.DB, error) {
	dialector, err := Dialector(driver, databaseURL)
	if err != nil {
		return nil, err
	}

	// Configure GORM
	config := &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Printf("Database (%s) connected successfully", driver)
	return db, nil
}

func Dialector(driver, databaseURL string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "":
		return postgres.Open(databaseURL), nil
	case "mysql":
		return mysql.Open(databaseURL), nil
	case "sqlite":
		return sqlite.Open(databaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Category{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PasswordResetToken{},
		&models.Inquiry{},
	)
}
