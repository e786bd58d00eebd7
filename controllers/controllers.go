package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
)

// ErrNoPermission is returned when a caller's role does not cover a route.
var ErrNoPermission = errors.New("you do not have permission")

var errNoSession = errors.New("user id not found in context")

// currentUserID reads the principal set by the auth middleware.
func currentUserID(c *gin.Context) (uint, error) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, errNoSession
	}
	id, ok := v.(uint)
	if !ok {
		return 0, errNoSession
	}
	return id, nil
}

// currentUser loads the authenticated user's profile row.
func currentUser(db *gorm.DB, c *gin.Context) (models.User, error) {
	id, err := currentUserID(c)
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}
