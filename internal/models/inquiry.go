package models

import "time"

type InquiryStatus string

const (
	InquiryNew        InquiryStatus = "new"
	InquiryInProgress InquiryStatus = "in_progress"
	InquiryResolved   InquiryStatus = "resolved"
)

func IsInquiryStatus(status string) bool {
	switch InquiryStatus(status) {
	case InquiryNew, InquiryInProgress, InquiryResolved:
		return true
	}
	return false
}

type Inquiry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Phone     string    `json:"phone" gorm:"size:20;not null"`
	Email     string    `json:"email" gorm:"size:254"`
	Message   string    `json:"message" gorm:"type:text"`
	Status    string    `json:"status" gorm:"size:20;not null;default:'new'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Inquiry) TableName() string {
	return "restaurant_inquiry"
}
