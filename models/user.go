package models

import "time"

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"type:varchar(255);not null" json:"name"`
	Email             string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password          string    `gorm:"type:varchar(255);not null" json:"-"`
	Role              string    `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	PhoneNumber       string    `gorm:"type:varchar(30)" json:"phone_number"`
	IsVerified        bool      `gorm:"default:false" json:"is_verified"`
	VerificationToken *string   `gorm:"type:varchar(64);index" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
