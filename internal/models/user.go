package models

import (
	"time"
)

// User maps the existing auth_user table. Flags are stored as 0/1 integers.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email       string     `json:"email" gorm:"size:254;not null"`
	Password    string     `json:"-" gorm:"size:128;not null"`
	FirstName   string     `json:"first_name" gorm:"size:150"`
	LastName    string     `json:"last_name" gorm:"size:150"`
	IsActive    int        `json:"is_active" gorm:"not null"`
	IsStaff     int        `json:"is_staff" gorm:"not null;default:0"`
	IsSuperuser int        `json:"is_superuser" gorm:"not null;default:0"`
	DateJoined  time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastLogin   *time.Time `json:"last_login"`
}

func (User) TableName() string {
	return "auth_user"
}

func (u *User) Active() bool {
	return u.IsActive == 1
}

// Owner reports whether the user may sign in to the owner console.
func (u *User) Owner() bool {
	return u.IsActive == 1 && u.IsStaff == 1 && u.IsSuperuser == 1
}

func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
