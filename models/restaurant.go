package models

import "time"

type Restaurant struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Address     string `gorm:"type:varchar(255)" json:"address"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	// Opening hours per weekday, stored as a JSON object string.
	OpeningHours string    `gorm:"type:text" json:"opening_hours"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
