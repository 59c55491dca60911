package models

import "time"

const (
	StatusInactive = 0
	StatusActive   = 1
)

type Category struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Name        string     `json:"name" gorm:"size:100;not null"`
	Description string     `json:"description" gorm:"type:text"`
	Status      int        `json:"status" gorm:"not null"`
	CreatedAt   time.Time  `json:"created_at"`
	MenuItems   []MenuItem `json:"-" gorm:"foreignKey:CategoryID"`
}

func (Category) TableName() string {
	return "restaurant_category"
}
