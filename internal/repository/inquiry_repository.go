package repository

import (
	"seaside_restaurant/internal/models"

	"gorm.io/gorm"
)

type InquiryRepository interface {
	Create(inquiry *models.Inquiry) error
	GetByID(id uint) (*models.Inquiry, error)
	List() ([]models.Inquiry, error)
	UpdateStatus(inquiry *models.Inquiry, status string) error
}

type inquiryRepository struct {
	db *gorm.DB
}

func NewInquiryRepository(db *gorm.DB) InquiryRepository {
	return &inquiryRepository{db: db}
}

func (r *inquiryRepository) Create(inquiry *models.Inquiry) error {
	return r.db.Create(inquiry).Error
}

func (r *inquiryRepository) GetByID(id uint) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := r.db.First(&inquiry, id).Error
	if err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) List() ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := r.db.Order("created_at desc, id desc").Find(&inquiries).Error
	return inquiries, err
}

func (r *inquiryRepository) UpdateStatus(inquiry *models.Inquiry, status string) error {
	inquiry.Status = status
	return r.db.Model(inquiry).Update("status", status).Error
}
