package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cache"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type MenuController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewMenuController(db *gorm.DB, store cache.Store) *MenuController {
	return &MenuController{DB: db, Cache: store}
}

// GetAllMenus serves the catalog listing through the TTL cache. Within the
// TTL window repeated calls answer from memory; admin writes invalidate.
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	if cached, found := mc.Cache.Get(cache.MenuListKey); found {
		utils.RespondJSON(c, http.StatusOK, "List of menus", cached)
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Category").Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Set(cache.MenuListKey, menus)
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetFeaturedMenus -> items flagged for the landing page carousel.
func (mc *MenuController) GetFeaturedMenus(c *gin.Context) {
	if cached, found := mc.Cache.Get(cache.FeaturedListKey); found {
		utils.RespondJSON(c, http.StatusOK, "Featured menus", cached)
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Category").
		Where("featured = ?", true).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.Cache.Set(cache.FeaturedListKey, menus)
	utils.RespondJSON(c, http.StatusOK, "Featured menus", menus)
}

// GetMenuByCategory returns menus for one category.
// Endpoint: GET /menus/by-category?category=<category id>
func (mc *MenuController) GetMenuByCategory(c *gin.Context) {
	categoryIDStr := c.Query("category")
	if categoryIDStr == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("query parameter 'category' is required"))
		return
	}

	categoryID, err := strconv.Atoi(categoryIDStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category ID"))
		return
	}

	var menus []models.Menu
	if err := mc.DB.Preload("Category").
		Where("category_id = ?", categoryID).
		Find(&menus).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, fmt.Sprintf("List of menus for category ID: %d", categoryID), menus)
}

// GetMenuByID
func (mc *MenuController) GetMenuByID(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	key := cache.MenuItemKey(uint(id))
	if cached, found := mc.Cache.Get(key); found {
		utils.RespondJSON(c, http.StatusOK, "Menu detail", cached)
		return
	}

	var menu models.Menu
	if err := mc.DB.Preload("Category").First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	mc.Cache.Set(key, menu)
	utils.RespondJSON(c, http.StatusOK, "Menu detail", menu)
}

type menuRequest struct {
	CategoryID  uint    `json:"category_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       string  `json:"price" binding:"required"`
	ImageUrl    *string `json:"image_url"`
	Featured    *bool   `json:"featured"`
}

// CreateMenu (admin). Price arrives as a string and is parsed fixed-point;
// float input would reintroduce the rounding defect this schema avoids.
func (mc *MenuController) CreateMenu(c *gin.Context) {
	var req menuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || price.IsNegative() {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
		return
	}

	menu := models.Menu{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageUrl:    req.ImageUrl,
	}
	if req.Featured != nil {
		menu.Featured = *req.Featured
	}

	if err := mc.DB.Create(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.invalidate(menu.ID)
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}

// UpdateMenu (admin)
func (mc *MenuController) UpdateMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var menu models.Menu
	if err := mc.DB.First(&menu, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu not found"))
		return
	}

	var body struct {
		CategoryID  *uint   `json:"category_id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Price       *string `json:"price"`
		ImageUrl    *string `json:"image_url"`
		Featured    *bool   `json:"featured"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.CategoryID != nil {
		menu.CategoryID = *body.CategoryID
	}
	if body.Name != nil {
		menu.Name = *body.Name
	}
	if body.Description != nil {
		menu.Description = *body.Description
	}
	if body.Price != nil {
		price, err := decimal.NewFromString(*body.Price)
		if err != nil || price.IsNegative() {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid price"))
			return
		}
		menu.Price = price
	}
	if body.ImageUrl != nil {
		menu.ImageUrl = body.ImageUrl
	}
	if body.Featured != nil {
		menu.Featured = *body.Featured
	}

	if err := mc.DB.Save(&menu).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.invalidate(menu.ID)
	utils.RespondJSON(c, http.StatusOK, "Menu updated", menu)
}

// DeleteMenu (admin)
func (mc *MenuController) DeleteMenu(c *gin.Context) {
	idStr := c.Param("menu_id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	if err := mc.DB.Delete(&models.Menu{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mc.invalidate(uint(id))
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"menu_id": id})
}

// invalidate drops the listing keys and the specific item key after any
// catalog write.
func (mc *MenuController) invalidate(menuID uint) {
	mc.Cache.Delete(cache.MenuListKey, cache.FeaturedListKey, cache.MenuItemKey(menuID))
}
