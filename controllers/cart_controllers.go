package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cart"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type CartController struct {
	DB    *gorm.DB
	Carts *cart.Manager
}

func NewCartController(db *gorm.DB, carts *cart.Manager) *CartController {
	return &CartController{DB: db, Carts: carts}
}

// GetCart -> current lines and total.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	userCart := cc.Carts.ForUser(userID)
	utils.RespondJSON(c, http.StatusOK, "Cart contents", gin.H{
		"items": userCart.Lines(),
		"total": userCart.Total(),
	})
}

// AddItem snapshots the catalog item into the cart; an existing line for the
// same item has its quantity incremented instead.
func (cc *CartController) AddItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		MenuID   uint `json:"menu_id" binding:"required"`
		Quantity int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}
	if body.Quantity < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("quantity must be positive"))
		return
	}

	var menu models.Menu
	if err := cc.DB.First(&menu, body.MenuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	userCart := cc.Carts.ForUser(userID)
	userCart.Add(menu, body.Quantity)

	utils.RespondJSON(c, http.StatusOK, "Item added to cart", gin.H{
		"items": userCart.Lines(),
		"total": userCart.Total(),
	})
}

// UpdateItem overwrites a line's quantity; zero or less removes the line.
func (cc *CartController) UpdateItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userCart := cc.Carts.ForUser(userID)
	userCart.SetQuantity(uint(menuID), body.Quantity)

	utils.RespondJSON(c, http.StatusOK, "Cart updated", gin.H{
		"items": userCart.Lines(),
		"total": userCart.Total(),
	})
}

// RemoveItem drops a line; removing an absent item is still a 200.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	userCart := cc.Carts.ForUser(userID)
	userCart.Remove(uint(menuID))

	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", gin.H{
		"items": userCart.Lines(),
		"total": userCart.Total(),
	})
}

// ClearCart empties the caller's cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	cc.Carts.Drop(userID)
	utils.RespondJSON(c, http.StatusOK, "Cart cleared", nil)
}
