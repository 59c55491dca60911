package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"seaside_restaurant/internal/apperror"
	"seaside_restaurant/internal/models"
	"seaside_restaurant/internal/repository"
	"seaside_restaurant/pkg/mailer"

	"gorm.io/gorm"
)

type InquiryInput struct {
	Name    string
	Phone   string
	Email   string
	Message string
}

type InquiryService interface {
	Create(ctx context.Context, input InquiryInput) (*models.Inquiry, error)
	List() ([]models.Inquiry, error)
	UpdateStatus(id uint, status string) (*models.Inquiry, error)
}

type inquiryService struct {
	repo       repository.InquiryRepository
	mail       mailer.Mailer
	adminEmail string
	log        *slog.Logger
}

func NewInquiryService(repo repository.InquiryRepository, mail mailer.Mailer, adminEmail string, log *slog.Logger) InquiryService {
	return &inquiryService{repo: repo, mail: mail, adminEmail: adminEmail, log: log}
}

func (s *inquiryService) Create(ctx context.Context, input InquiryInput) (*models.Inquiry, error) {
	inquiry := &models.Inquiry{
		Name:    strings.TrimSpace(input.Name),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   strings.TrimSpace(input.Email),
		Message: strings.TrimSpace(input.Message),
		Status:  string(models.InquiryNew),
	}

	switch {
	case inquiry.Name == "":
		return nil, apperror.Invalid("Name is required")
	case inquiry.Phone == "":
		return nil, apperror.Invalid("Phone is required")
	case inquiry.Message == "":
		return nil, apperror.Invalid("Message is required")
	case countDigits(inquiry.Phone) < 10:
		return nil, apperror.Invalid("Please enter a valid phone number")
	case inquiry.Email != "" && !validEmail(inquiry.Email):
		return nil, apperror.Invalid("Please enter a valid email address")
	}

	if err := s.repo.Create(inquiry); err != nil {
		return nil, err
	}

	if err := s.notifyAdmin(ctx, inquiry); err != nil {
		s.log.Warn("inquiry notification email failed", "inquiry_id", inquiry.ID, "error", err)
	}
	return inquiry, nil
}

func (s *inquiryService) notifyAdmin(ctx context.Context, inquiry *models.Inquiry) error {
	if s.mail == nil || s.adminEmail == "" {
		return mailer.ErrNotConfigured
	}

	email := inquiry.Email
	if email == "" {
		email = "Not provided"
	}
	body := fmt.Sprintf(`New restaurant inquiry received:

Name: %s
Phone: %s
Email: %s

Message:
%s

Received: %s

Inquiry ID: %d`,
		inquiry.Name, inquiry.Phone, email, inquiry.Message,
		inquiry.CreatedAt.Format("2006-01-02 15:04:05"), inquiry.ID)

	return s.mail.Send(ctx, mailer.Message{
		To:       []string{s.adminEmail},
		Subject:  "New Restaurant Inquiry from " + inquiry.Name,
		TextBody: body,
	})
}

func (s *inquiryService) List() ([]models.Inquiry, error) {
	return s.repo.List()
}

func (s *inquiryService) UpdateStatus(id uint, status string) (*models.Inquiry, error) {
	if id == 0 || status == "" {
		return nil, apperror.Invalid("id and status are required")
	}
	if !models.IsInquiryStatus(status) {
		return nil, apperror.Invalid("Invalid status. Must be one of: new, in_progress, resolved")
	}

	inquiry, err := s.repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Missing("Inquiry not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(inquiry, status); err != nil {
		return nil, err
	}
	return inquiry, nil
}
