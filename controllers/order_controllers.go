package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/services"
	"github.com/wajabatt/restaurant-app/utils"
)

type OrderController struct {
	DB      *gorm.DB
	Service *services.OrderService
}

func NewOrderController(db *gorm.DB, svc *services.OrderService) *OrderController {
	return &OrderController{DB: db, Service: svc}
}

type createOrderRequest struct {
	MenuID         uint   `json:"menu_id" binding:"required"`
	Quantity       int    `json:"quantity" binding:"required"`
	IdempotencyKey string `json:"idempotency_key"`
	CustomerName   string `json:"customer_name"`
	CustomerEmail  string `json:"customer_email"`
	CustomerPhone  string `json:"customer_phone"`
	Description    string `json:"description"`
}

// CreateOrder -> channel A. Creates the durable order, then hands back the
// prefilled WhatsApp deep link for the client to open. Whether the message
// is ever sent is invisible to the server; the order stays PENDING.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	order, existing, ok := oc.placeOrder(c)
	if !ok {
		return
	}

	code := http.StatusCreated
	message := "Order created"
	if existing {
		code = http.StatusOK
		message = "Order already exists for this idempotency key"
	}

	utils.RespondJSON(c, code, message, gin.H{
		"order":        order,
		"whatsapp_url": oc.Service.WhatsAppLink(order),
	})
}

// CreateEmailOrder -> channel B. Same creation path, then a transactional
// email to the operator. A send failure is reported but the order is already
// durable and is returned regardless.
func (oc *OrderController) CreateEmailOrder(c *gin.Context) {
	order, existing, ok := oc.placeOrder(c)
	if !ok {
		return
	}

	if existing {
		utils.RespondJSON(c, http.StatusOK, "Order already exists for this idempotency key", gin.H{
			"order":      order,
			"email_sent": false,
		})
		return
	}

	if err := oc.Service.NotifyByEmail(order); err != nil {
		utils.RespondJSON(c, http.StatusCreated, "Order created, notification email failed", gin.H{
			"order":      order,
			"email_sent": false,
		})
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order":      order,
		"email_sent": true,
	})
}

// placeOrder binds the request, resolves the principal and runs the
// workflow, writing the error response itself when something fails.
func (oc *OrderController) placeOrder(c *gin.Context) (*models.Order, bool, bool) {
	user, err := currentUser(oc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return nil, false, false
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return nil, false, false
	}

	order, existing, err := oc.Service.PlaceOrder(user, services.PlaceOrderInput{
		MenuID:         req.MenuID,
		Quantity:       req.Quantity,
		IdempotencyKey: req.IdempotencyKey,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Description:    req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMenuItemNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrInvalidQuantity),
			errors.Is(err, services.ErrMissingIdempotencyKey),
			errors.Is(err, services.ErrInvalidIdempotencyKey):
			utils.RespondError(c, http.StatusBadRequest, err)
		default:
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return nil, false, false
	}

	return order, existing, true
}

// GetOrderByID -> owner or admin only.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	role, _ := c.Get("role")
	if order.UserID != userID && role != models.RoleAdmin {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetAllOrders (admin) -> list orders with items, newest first.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := oc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus (admin) is the only post-creation mutation an order
// permits. Lines and contact snapshot stay frozen.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid order status: %s", req.Status))
		return
	}

	order.Status = req.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d status changed to %s", order.ID, order.Status)
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// DeleteOrder (admin)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	idStr := c.Param("order_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	if err := oc.DB.Delete(&models.Order{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}
