package repository

import (
	"strings"

	"seaside_restaurant/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetActive(id uint) (*models.Category, error)
	ListByStatus(status int) ([]models.Category, error)
	NameExists(name string) (bool, error)
	SetStatus(id uint, status int) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetActive(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.Where("id = ? AND status = ?", id, models.StatusActive).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) ListByStatus(status int) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Where("status = ?", status).Order("id").Find(&categories).Error
	return categories, err
}

// NameExists compares case-insensitively across active and deleted categories.
func (r *categoryRepository) NameExists(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Category{}).
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Count(&count).Error
	return count > 0, err
}

func (r *categoryRepository) SetStatus(id uint, status int) error {
	return r.db.Model(&models.Category{}).Where("id = ?", id).Update("status", status).Error
}
