package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// GetDashboardStats summarizes the back office landing page: order counts
// per status, revenue from delivered orders, reservation and user counts.
func (ac *AdminController) GetDashboardStats(c *gin.Context) {
	var stats struct {
		TotalOrders  int64  `json:"total_orders"`
		TodayOrders  int64  `json:"today_orders"`
		TotalRevenue string `json:"total_revenue"`
		OrderStats   struct {
			Pending   int64 `json:"pending"`
			Confirmed int64 `json:"confirmed"`
			Preparing int64 `json:"preparing"`
			Ready     int64 `json:"ready"`
			Delivered int64 `json:"delivered"`
			Cancelled int64 `json:"cancelled"`
		} `json:"order_stats"`
		PendingReservations int64 `json:"pending_reservations"`
		TotalUsers          int64 `json:"total_users"`
	}

	ac.DB.Model(&models.Order{}).Count(&stats.TotalOrders)
	ac.DB.Model(&models.Order{}).
		Where("DATE(created_at) = DATE('now')").
		Count(&stats.TodayOrders)

	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&stats.OrderStats.Pending)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusConfirmed).Count(&stats.OrderStats.Confirmed)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPreparing).Count(&stats.OrderStats.Preparing)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusReady).Count(&stats.OrderStats.Ready)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusDelivered).Count(&stats.OrderStats.Delivered)
	ac.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusCancelled).Count(&stats.OrderStats.Cancelled)

	// Revenue stays fixed-point: totals are summed as decimals, not floats.
	var totals []decimal.Decimal
	ac.DB.Model(&models.Order{}).
		Where("status = ?", models.OrderStatusDelivered).
		Pluck("total", &totals)
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}
	stats.TotalRevenue = revenue.StringFixed(2)

	ac.DB.Model(&models.Reservation{}).
		Where("status = ?", models.ReservationStatusPending).
		Count(&stats.PendingReservations)
	ac.DB.Model(&models.User{}).Count(&stats.TotalUsers)

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats retrieved successfully", stats)
}

// GetAllUsers (admin)
func (ac *AdminController) GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := ac.DB.Find(&users).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All users", users)
}

// UpdateUserRole (admin)
func (ac *AdminController) UpdateUserRole(c *gin.Context) {
	id := c.Param("user_id")

	var user models.User
	if err := ac.DB.First(&user, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Role != models.RoleCustomer && req.Role != models.RoleAdmin {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid role: %s", req.Role))
		return
	}

	user.Role = req.Role
	if err := ac.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("User %d role changed to %s", user.ID, user.Role)
	utils.RespondJSON(c, http.StatusOK, "User role updated", user)
}

// DeleteUser (admin). An admin cannot delete their own account.
func (ac *AdminController) DeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid user id"))
		return
	}

	callerID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}
	if uint(id) == callerID {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete your own account"))
		return
	}

	if err := ac.DB.Delete(&models.User{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "User deleted", gin.H{"user_id": id})
}
