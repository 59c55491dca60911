package services

import (
	"context"
	"errors"
	"math"
	"strings"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MenuItemInput struct {
	Name                 string
	Description          string
	CategoryID           uint
	PricingType          string
	Image                string
	Price                *float64
	HasPriceVariations   bool
	PriceVariations      map[string]float64
	IsAvailable          *bool
	IsVegetarian         bool
	AvailabilitySchedule map[string]interface{}
}

// MenuItemPatch lists the fields of a partial update. Nil pointers and false
// Set* flags leave the stored value alone.
type MenuItemPatch struct {
	Name                 *string
	Description          *string
	Image                *string
	PricingType          *string
	SetPrice             bool
	Price                *float64
	IsAvailable          *bool
	IsVegetarian         *bool
	SetPriceVariations   bool
	PriceVariations      map[string]float64
	SetSchedule          bool
	AvailabilitySchedule map[string]interface{}
	CategoryID           *uint
}

type MenuService interface {
	CompleteMenu(ctx context.Context) ([]MenuSection, error)
	ByCategory(categoryID uint) ([]models.MenuItem, error)
	Get(id uint) (*models.MenuItem, error)
	Search(query string, availableOnly bool) ([]models.MenuItem, error)
	List(filter repository.MenuFilter) ([]models.MenuItem, error)
	Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error)
	Update(ctx context.Context, id uint, patch MenuItemPatch) (*models.MenuItem, []string, error)
	Delete(ctx context.Context, id uint) error
}

type menuService struct {
	categoryRepo repository.CategoryRepository
	menuRepo     repository.MenuItemRepository
	cache        *MenuCache
}

func NewMenuService(categoryRepo repository.CategoryRepository, menuRepo repository.MenuItemRepository, cache *MenuCache) MenuService {
	return &menuService{categoryRepo: categoryRepo, menuRepo: menuRepo, cache: cache}
}

// CompleteMenu groups live items under their live categories. Categories
// without items are left out.
func (s *menuService) CompleteMenu(ctx context.Context) ([]MenuSection, error) {
	if sections, ok := s.cache.Get(ctx); ok {
		return sections, nil
	}

	categories, err := s.categoryRepo.ListByStatus(models.StatusActive)
	if err != nil {
		return nil, err
	}
	items, err := s.menuRepo.List(repository.MenuFilter{})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[uint][]models.MenuItem)
	for _, item := range items {
		item.Category = nil
		byCategory[item.CategoryID] = append(byCategory[item.CategoryID], item)
	}

	sections := make([]MenuSection, 0, len(categories))
	for _, category := range categories {
		if len(byCategory[category.ID]) == 0 {
			continue
		}
		sections = append(sections, MenuSection{Category: category, Items: byCategory[category.ID]})
	}

	s.cache.Put(ctx, sections)
	return sections, nil
}

func (s *menuService) ByCategory(categoryID uint) ([]models.MenuItem, error) {
	return s.menuRepo.List(repository.MenuFilter{CategoryID: categoryID})
}

func (s *menuService) Get(id uint) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetActive(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Missing("Menu item not found")
	}
	return item, err
}

func (s *menuService) Search(query string, availableOnly bool) ([]models.MenuItem, error) {
	return s.menuRepo.SearchByName(strings.TrimSpace(query), availableOnly)
}

func (s *menuService) List(filter repository.MenuFilter) ([]models.MenuItem, error) {
	return s.menuRepo.List(filter)
}

func wholePrice(v float64) (int64, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, apperror.Invalid("Invalid price format")
	}
	return int64(v), nil
}

func validPricingType(t string) bool {
	return t == models.PricingSingle || t == models.PricingMultiple
}

func convertVariations(vars map[string]float64) (map[string]int64, error) {
	if len(vars) == 0 {
		return nil, apperror.Invalid("Price variations must be a non-empty object")
	}
	out := make(map[string]int64, len(vars))
	for name, v := range vars {
		if v <= 0 {
			return nil, apperror.Invalid(`Price for "%s" must be greater than 0`, name)
		}
		p, err := wholePrice(v)
		if err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

func (s *menuService) activeCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetActive(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Invalid("Category not found")
	}
	return category, err
}

func (s *menuService) Create(ctx context.Context, input MenuItemInput) (*models.MenuItem, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.PricingType = strings.TrimSpace(input.PricingType)
	input.Image = strings.TrimSpace(input.Image)

	switch {
	case input.Name == "":
		return nil, apperror.Invalid("name is required")
	case input.Description == "":
		return nil, apperror.Invalid("description is required")
	case input.CategoryID == 0:
		return nil, apperror.Invalid("category_id is required")
	case input.PricingType == "":
		return nil, apperror.Invalid("pricing_type is required")
	case input.Image == "":
		return nil, apperror.Invalid("image is required")
	}

	category, err := s.activeCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	if !validPricingType(input.PricingType) {
		return nil, apperror.Invalid(`pricing_type must be either "single" or "multiple"`)
	}

	item := &models.MenuItem{
		Name:         input.Name,
		Description:  input.Description,
		CategoryID:   category.ID,
		Category:     category,
		Image:        input.Image,
		PricingType:  input.PricingType,
		IsAvailable:  true,
		IsVegetarian: input.IsVegetarian,
		Status:       models.StatusActive,
	}
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	if input.AvailabilitySchedule != nil {
		item.AvailabilitySchedule = datatypes.JSONMap(input.AvailabilitySchedule)
	}

	if input.PricingType == models.PricingSingle {
		if input.Price == nil {
			return nil, apperror.Invalid("Price is required for single pricing type")
		}
		if *input.Price <= 0 {
			return nil, apperror.Invalid("Price must be greater than 0")
		}
	} else {
		if !input.HasPriceVariations {
			return nil, apperror.Invalid("Price variations are required for multiple pricing type")
		}
		vars, err := convertVariations(input.PriceVariations)
		if err != nil {
			return nil, err
		}
		item.PriceVariations = models.SetVariations(vars)
	}

	// A price sent alongside multiple pricing is kept but never used for orders.
	if input.Price != nil && *input.Price > 0 {
		p, err := wholePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		item.Price = &p
	}

	if !validImageRef(input.Image) {
		return nil, apperror.Invalid("Image must be a valid URL, file path, or base64 data URL")
	}

	if err := s.menuRepo.Create(item); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return item, nil
}

// Update applies patch to an item whose category is live. It returns the
// names of the fields that were written, in a fixed order: name, description,
// price, image, pricing_type, is_available, is_vegetarian, price_variations,
// availability_schedule, then category_id.
func (s *menuService) Update(ctx context.Context, id uint, patch MenuItemPatch) (*models.MenuItem, []string, error) {
	item, err := s.menuRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && (item.Category == nil || item.Category.Status != models.StatusActive)) {
		return nil, nil, apperror.Missing("Menu item with ID %d does not exist", id)
	}
	if err != nil {
		return nil, nil, err
	}

	var updated, columns []string
	mark := func(field, column string) {
		updated = append(updated, field)
		columns = append(columns, column)
	}

	if patch.Name != nil {
		item.Name = strings.TrimSpace(*patch.Name)
		mark("name", "name")
	}
	if patch.Description != nil {
		item.Description = strings.TrimSpace(*patch.Description)
		mark("description", "description")
	}
	if patch.SetPrice {
		if patch.Price == nil {
			item.Price = nil
		} else {
			if *patch.Price <= 0 {
				return nil, nil, apperror.Invalid("Price must be greater than 0")
			}
			p, err := wholePrice(*patch.Price)
			if err != nil {
				return nil, nil, err
			}
			item.Price = &p
		}
		mark("price", "price")
	}
	if patch.Image != nil {
		image := strings.TrimSpace(*patch.Image)
		if !validImageRef(image) {
			return nil, nil, apperror.Invalid("Image must be a valid URL, file path, or base64 data URL")
		}
		item.Image = image
		mark("image", "image")
	}
	if patch.PricingType != nil {
		if !validPricingType(*patch.PricingType) {
			return nil, nil, apperror.Invalid(`pricing_type must be either "single" or "multiple"`)
		}
		item.PricingType = *patch.PricingType
		mark("pricing_type", "pricing_type")
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
		mark("is_available", "is_available")
	}
	if patch.IsVegetarian != nil {
		item.IsVegetarian = *patch.IsVegetarian
		mark("is_vegetarian", "is_vegetarian")
	}
	if patch.SetPriceVariations {
		if patch.PriceVariations == nil {
			item.PriceVariations = nil
		} else {
			vars, err := convertVariations(patch.PriceVariations)
			if err != nil {
				return nil, nil, err
			}
			item.PriceVariations = models.SetVariations(vars)
		}
		mark("price_variations", "price_variations")
	}
	if patch.SetSchedule {
		item.AvailabilitySchedule = datatypes.JSONMap(patch.AvailabilitySchedule)
		mark("availability_schedule", "availability_schedule")
	}
	if patch.CategoryID != nil {
		category, err := s.categoryRepo.GetActive(*patch.CategoryID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperror.Invalid("Invalid category ID provided")
		}
		if err != nil {
			return nil, nil, err
		}
		item.CategoryID = category.ID
		item.Category = category
		mark("category_id", "category_id")
	}

	if err := s.menuRepo.Update(item, columns); err != nil {
		return nil, nil, err
	}

	s.cache.Invalidate(ctx)
	if updated == nil {
		updated = []string{}
	}
	return item, updated, nil
}

func (s *menuService) Delete(ctx context.Context, id uint) error {
	if _, err := s.menuRepo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.Missing("Menu item with ID %d does not exist", id)
		}
		return err
	}

	if err := s.menuRepo.SetStatus(id, models.StatusInactive); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}
