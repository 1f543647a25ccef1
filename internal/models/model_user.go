package models

import "time"

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleStaff UserRole = "staff"
)

// User is a back-office account, not a gym member.
type User struct {
	ID           string    `gorm:"column:id;primary_key;type:uuid" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(128);not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(128);not null" json:"-"`
	Role         UserRole  `gorm:"column:role;type:varchar(32);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "app_user"
}
