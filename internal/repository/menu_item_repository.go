package repository

import (
	"seaside_restaurant/internal/models"

	"gorm.io/gorm"
)

// MenuFilter narrows menu listings. Zero values disable each predicate.
type MenuFilter struct {
	CategoryID     uint
	AvailableOnly  bool
	VegetarianOnly bool
	// IncludeDeleted keeps soft-deleted items. Items of deleted categories
	// are always excluded.
	IncludeDeleted bool
}

type MenuItemRepository interface {
	Create(item *models.MenuItem) error
	GetByID(id uint) (*models.MenuItem, error)
	GetActive(id uint) (*models.MenuItem, error)
	GetActiveByIDs(ids []uint) (map[uint]*models.MenuItem, error)
	List(filter MenuFilter) ([]models.MenuItem, error)
	SearchByName(query string, availableOnly bool) ([]models.MenuItem, error)
	Update(item *models.MenuItem, fields []string) error
	SetStatus(id uint, status int) error
	CountActive() (int64, error)
}

type menuItemRepository struct {
	db *gorm.DB
}

func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(item *models.MenuItem) error {
	return r.db.Create(item).Error
}

func (r *menuItemRepository) GetByID(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.db.Preload("Category").First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// inActiveCategory restricts to items whose category is live.
func (r *menuItemRepository) inActiveCategory() *gorm.DB {
	return r.db.Model(&models.MenuItem{}).
		Joins("JOIN restaurant_category ON restaurant_category.id = restaurant_menuitem.category_id").
		Where("restaurant_category.status = ?", models.StatusActive).
		Preload("Category")
}

// active restricts to live items whose category is live too.
func (r *menuItemRepository) active() *gorm.DB {
	return r.inActiveCategory().Where("restaurant_menuitem.status = ?", models.StatusActive)
}

func (r *menuItemRepository) GetActive(id uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := r.active().Where("restaurant_menuitem.id = ?", id).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) GetActiveByIDs(ids []uint) (map[uint]*models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.active().Where("restaurant_menuitem.id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	return byID, nil
}

func (r *menuItemRepository) List(filter MenuFilter) ([]models.MenuItem, error) {
	query := r.active()
	if filter.IncludeDeleted {
		query = r.inActiveCategory()
	}

	if filter.CategoryID != 0 {
		query = query.Where("restaurant_menuitem.category_id = ?", filter.CategoryID)
	}
	if filter.AvailableOnly {
		query = query.Where("restaurant_menuitem.is_available = ?", true)
	}
	if filter.VegetarianOnly {
		query = query.Where("restaurant_menuitem.is_vegetarian = ?", true)
	}

	var items []models.MenuItem
	err := query.Order("restaurant_menuitem.id").Find(&items).Error
	return items, err
}

func (r *menuItemRepository) SearchByName(query string, availableOnly bool) ([]models.MenuItem, error) {
	q := r.active().Where("LOWER(restaurant_menuitem.name) LIKE ? ESCAPE '!'", likePattern(query))
	if availableOnly {
		q = q.Where("restaurant_menuitem.is_available = ?", true)
	}

	var items []models.MenuItem
	err := q.Order("restaurant_menuitem.name").Find(&items).Error
	return items, err
}

// Update writes only the named columns of item.
func (r *menuItemRepository) Update(item *models.MenuItem, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(item).Select(fields).Updates(item).Error
}

func (r *menuItemRepository) SetStatus(id uint, status int) error {
	return r.db.Model(&models.MenuItem{}).Where("id = ?", id).Update("status", status).Error
}

func (r *menuItemRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.MenuItem{}).Where("status = ?", models.StatusActive).Count(&count).Error
	return count, err
}
