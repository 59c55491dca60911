package repository

import (
	"seaside_restaurant/internal/models"

	"gorm.io/gorm"
)

type PasswordResetRepository interface {
	Create(token *models.PasswordResetToken) error
	GetUnused(token string) (*models.PasswordResetToken, error)
	MarkUsed(id uint) error
}

type passwordResetRepository struct {
	db *gorm.DB
}

func NewPasswordResetRepository(db *gorm.DB) PasswordResetRepository {
	return &passwordResetRepository{db: db}
}

func (r *passwordResetRepository) Create(token *models.PasswordResetToken) error {
	return r.db.Create(token).Error
}

func (r *passwordResetRepository) GetUnused(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	err := r.db.Where("token = ? AND is_used = ?", token, 0).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *passwordResetRepository) MarkUsed(id uint) error {
	return r.db.Model(&models.PasswordResetToken{}).Where("id = ?", id).Update("is_used", 1).Error
}
