package models

import "time"

// UserPreference is the dietary profile for one user: at most one row per
// user, replaced wholesale on every save.
type UserPreference struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User                User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DietaryRestrictions []string  `gorm:"serializer:json;type:text" json:"dietary_restrictions"`
	Allergies           []string  `gorm:"serializer:json;type:text" json:"allergies"`
	SpicePreference     string    `gorm:"type:varchar(30)" json:"spice_preference"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}
