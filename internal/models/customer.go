package models

import "time"

type Customer struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	Email     string    `json:"email" gorm:"size:254;index"`
	Phone     string    `json:"phone" gorm:"size:15"`
	Address   string    `json:"address" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Customer) TableName() string {
	return "restaurant_customer"
}
