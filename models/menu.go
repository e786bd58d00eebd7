package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu is a sellable catalog item. Price is fixed-point; it must never be
// carried as a float anywhere in the ordering path.
type Menu struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CategoryID  uint            `gorm:"not null" json:"category_id"`
	Category    MenuCategory    `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"category"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageUrl    *string         `gorm:"type:varchar(255)" json:"image_url"`
	Featured    bool            `gorm:"default:false" json:"featured"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
