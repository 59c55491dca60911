package models

import "time"

type PasswordResetToken struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      *User     `json:"-" gorm:"foreignKey:UserID"`
	Token     string    `json:"token" gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	IsUsed    int       `json:"is_used" gorm:"not null;default:0"`
}

func (PasswordResetToken) TableName() string {
	return "restaurant_passwordresettoken"
}

func (t *PasswordResetToken) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(t.CreatedAt) > ttl
}
