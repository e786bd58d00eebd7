package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusReady     = "READY"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the order status values the
// admin status-change endpoint may set.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is an immutable snapshot once created: customer contact fields are
// copied at order time and line contents never change. Status is the only
// field mutated after creation.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	User           User            `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Status         string          `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	CustomerName   string          `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerEmail  string          `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerPhone  string          `gorm:"type:varchar(30)" json:"customer_phone"`
	Description    string          `gorm:"type:text" json:"description"`
	IdempotencyKey string          `gorm:"type:varchar(36);uniqueIndex;not null" json:"idempotency_key"`
	OrderItems     []OrderItem     `gorm:"foreignKey:OrderID" json:"order_items"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
