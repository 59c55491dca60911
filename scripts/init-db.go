package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"seaside_restaurant/internal/config"
	"seaside_restaurant/internal/database"
	"seaside_restaurant/internal/logger"
	"seaside_restaurant/internal/migrations"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/internal/services"
	"seaside_restaurant/pkg/mailer"

	"gorm.io/gorm"
)

type sampleItem struct {
	name       string
	price      float64
	variations map[string]float64
	vegetarian bool
}

var sampleMenu = []struct {
	category string
	items    []sampleItem
}{
	{"Starters", []sampleItem{
		{name: "Paneer Tikka", price: 120, vegetarian: true},
		{name: "Fish Fry", price: 180},
	}},
	{"Soup", []sampleItem{
		{name: "Tomato Soup", variations: map[string]float64{"Half": 60, "Full": 100}, vegetarian: true},
		{name: "Seafood Soup", variations: map[string]float64{"Half": 90, "Full": 150}},
	}},
}

func main() {
	withSample := flag.Bool("sample", false, "also create a small sample menu")
	flag.Parse()

	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()
	appLog := logger.New(logger.Config{Level: cfg.LogLevel, Format: "text", Component: "init-db"})

	db, err := database.Initialize(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	userService := services.NewUserService(
		repository.NewUserRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewPasswordResetRepository(db),
		mailer.Disabled{},
		nil,
		services.AuthSettings{SiteURL: cfg.SiteURL},
		appLog.Logger,
	)

	err = migrations.RunMigrations(db, userService, migrations.AdminSeed{
		Username: cfg.DefaultAdminUsername,
		Password: cfg.DefaultAdminPassword,
		Email:    cfg.DefaultAdminEmail,
	}, appLog.Logger)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	if *withSample {
		if err := createSampleMenu(db); err != nil {
			log.Fatal("Failed to create sample menu:", err)
		}
	}

	fmt.Println("Database initialization completed successfully!")
}

func createSampleMenu(db *gorm.DB) error {
	fmt.Println("Creating sample menu...")

	categoryRepo := repository.NewCategoryRepository(db)
	menuRepo := repository.NewMenuItemRepository(db)
	categories := services.NewCategoryService(categoryRepo, nil)
	menu := services.NewMenuService(categoryRepo, menuRepo, nil)

	ctx := context.Background()
	for _, section := range sampleMenu {
		category, err := categories.Create(ctx, section.category, "")
		if err != nil {
			return fmt.Errorf("category %s: %w", section.category, err)
		}

		for _, item := range section.items {
			input := services.MenuItemInput{
				Name:         item.name,
				CategoryID:   category.ID,
				IsVegetarian: item.vegetarian,
			}
			if item.variations != nil {
				input.PricingType = "multiple"
				input.HasPriceVariations = true
				input.PriceVariations = item.variations
			} else {
				price := item.price
				input.PricingType = "single"
				input.Price = &price
			}
			if _, err := menu.Create(ctx, input); err != nil {
				return fmt.Errorf("menu item %s: %w", item.name, err)
			}
		}
		fmt.Printf("Created %s with %d items\n", section.category, len(section.items))
	}
	return nil
}
