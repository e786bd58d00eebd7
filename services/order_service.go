package services

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

var (
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrMissingIdempotencyKey = errors.New("idempotency_key is required")
	ErrInvalidIdempotencyKey = errors.New("idempotency_key must be a valid UUID")
	ErrMenuItemNotFound      = errors.New("menu item not found")
)

type OrderService struct {
	DB             *gorm.DB
	Mailer         Mailer
	ManagerEmail   string
	WhatsAppNumber string
}

func NewOrderService(db *gorm.DB, mailer Mailer, managerEmail, waNumber string) *OrderService {
	return &OrderService{
		DB:             db,
		Mailer:         mailer,
		ManagerEmail:   managerEmail,
		WhatsAppNumber: waNumber,
	}
}

type PlaceOrderInput struct {
	MenuID         uint
	Quantity       int
	IdempotencyKey string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	Description    string
}

// PlaceOrder creates the durable order record for one catalog item.
//
// The total is always recomputed from the catalog's current price; a
// client-supplied total is never trusted. Contact fields default from the
// authenticated profile and may be overridden per order. A previously used
// idempotency key returns the original order (existing == true) and writes
// nothing.
//
// Once this returns a non-nil order, the order exists; notification is a
// separate step that cannot undo it.
func (s *OrderService) PlaceOrder(user models.User, in PlaceOrderInput) (order *models.Order, existing bool, err error) {
	if in.Quantity < 1 {
		return nil, false, ErrInvalidQuantity
	}

	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		return nil, false, ErrMissingIdempotencyKey
	}
	if _, err := uuid.Parse(key); err != nil {
		return nil, false, ErrInvalidIdempotencyKey
	}

	if prior, err := s.findByKey(key); err == nil {
		return prior, true, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	var menu models.Menu
	if err := s.DB.First(&menu, in.MenuID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrMenuItemNotFound
		}
		return nil, false, err
	}

	total := menu.Price.Mul(decimalFromInt(in.Quantity))

	newOrder := models.Order{
		UserID:         user.ID,
		Status:         models.OrderStatusPending,
		Total:          total,
		CustomerName:   defaultString(in.CustomerName, user.Name),
		CustomerEmail:  defaultString(in.CustomerEmail, user.Email),
		CustomerPhone:  defaultString(in.CustomerPhone, user.PhoneNumber),
		Description:    in.Description,
		IdempotencyKey: key,
		OrderItems: []models.OrderItem{
			{
				MenuID:   menu.ID,
				Quantity: in.Quantity,
				Price:    menu.Price,
			},
		},
	}

	if err := s.DB.Create(&newOrder).Error; err != nil {
		// A concurrent submission with the same key may have won the unique
		// index; in that case the original order is the answer.
		if prior, lookupErr := s.findByKey(key); lookupErr == nil {
			return prior, true, nil
		}
		return nil, false, err
	}

	created, err := s.findByKey(key)
	if err != nil {
		return &newOrder, false, nil
	}
	return created, false, nil
}

// NotifyByEmail sends the operator summary for channel B. A failure here is
// reported but never rolls the order back: it stays PENDING either way.
func (s *OrderService) NotifyByEmail(order *models.Order) error {
	err := s.Mailer.Send(s.ManagerEmail, OrderNotificationSubject(order), OrderNotificationBody(order))
	if err != nil {
		utils.ErrorLogger.Printf("order %d: notification email failed: %v", order.ID, err)
	}
	return err
}

// WhatsAppLink builds the channel A deep link for an order.
func (s *OrderService) WhatsAppLink(order *models.Order) string {
	return BuildWhatsAppLink(s.WhatsAppNumber, order)
}

func (s *OrderService) findByKey(key string) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		Where("idempotency_key = ?", key).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
