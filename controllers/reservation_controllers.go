package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type ReservationController struct {
	DB *gorm.DB
}

func NewReservationController(db *gorm.DB) *ReservationController {
	return &ReservationController{DB: db}
}

// CreateReservation books a table for the authenticated user.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		DateTime     string `json:"date_time" binding:"required"`
		PartySize    int    `json:"party_size" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dateTime, err := time.Parse(time.RFC3339, body.DateTime)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("date_time must be RFC3339"))
		return
	}
	if body.PartySize < 1 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("party_size must be at least 1"))
		return
	}

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, body.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}

	reservation := models.Reservation{
		UserID:       userID,
		RestaurantID: body.RestaurantID,
		DateTime:     dateTime,
		PartySize:    body.PartySize,
		Status:       models.ReservationStatusPending,
	}
	if err := rc.DB.Create(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Reservation #%d created for user %d", reservation.ID, userID)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetMyReservations -> the caller's reservations with restaurant detail.
func (rc *ReservationController) GetMyReservations(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var reservations []models.Reservation
	if err := rc.DB.Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("date_time asc").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservations", reservations)
}

// DeleteReservation -> only the owner can cancel a booking.
func (rc *ReservationController) DeleteReservation(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	id, err := strconv.Atoi(c.Param("reservation_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid reservation id"))
		return
	}

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if reservation.UserID != userID {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	if err := rc.DB.Delete(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation deleted", gin.H{"reservation_id": id})
}

// GetAllReservations (admin)
func (rc *ReservationController) GetAllReservations(c *gin.Context) {
	var reservations []models.Reservation
	if err := rc.DB.Preload("Restaurant").
		Order("date_time asc").
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All reservations", reservations)
}

// UpdateReservationStatus (admin)
func (rc *ReservationController) UpdateReservationStatus(c *gin.Context) {
	id := c.Param("reservation_id")

	var reservation models.Reservation
	if err := rc.DB.First(&reservation, id).Error; err != nil {
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

	if !models.ValidReservationStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("invalid reservation status: %s", req.Status))
		return
	}

	reservation.Status = req.Status
	if err := rc.DB.Save(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}
