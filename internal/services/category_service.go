package services

import (
	"context"
	"errors"
	"strings"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"

	"gorm.io/gorm"
)

type CategoryService interface {
	ListActive() ([]models.Category, error)
	ListDeleted() ([]models.Category, error)
	Create(ctx context.Context, name, description string) (*models.Category, error)
	SetStatus(ctx context.Context, id uint, status int) (*models.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *MenuCache
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cache *MenuCache) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, cache: cache}
}

func (s *categoryService) ListActive() ([]models.Category, error) {
	return s.categoryRepo.ListByStatus(models.StatusActive)
}

func (s *categoryService) ListDeleted() ([]models.Category, error) {
	return s.categoryRepo.ListByStatus(models.StatusInactive)
}

func (s *categoryService) Create(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Invalid("Category name is required")
	}

	exists, err := s.categoryRepo.NameExists(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Duplicate("Category with this name already exists")
	}

	category := &models.Category{
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      models.StatusActive,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return category, nil
}

// SetStatus soft-deletes (status 0) or restores (status 1) a category.
func (s *categoryService) SetStatus(ctx context.Context, id uint, status int) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Missing("Category not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.SetStatus(id, status); err != nil {
		return nil, err
	}
	category.Status = status

	s.cache.Invalidate(ctx)
	return category, nil
}
