package models

import "time"

// FavoriteDish associates a user with a catalog item. At most one row per
// (user, menu) pair; the unique index absorbs concurrent toggle races.
type FavoriteDish struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_menu" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuID    uint      `gorm:"not null;uniqueIndex:idx_user_menu" json:"menu_id"`
	Menu      Menu      `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"menu"`
	CreatedAt time.Time `json:"created_at"`
}
