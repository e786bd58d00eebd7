package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cache"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type MenuCategoryController struct {
	DB    *gorm.DB
	Cache cache.Store
}

func NewMenuCategoryController(db *gorm.DB, store cache.Store) *MenuCategoryController {
	return &MenuCategoryController{DB: db, Cache: store}
}

// GetAllCategories
func (mcc *MenuCategoryController) GetAllCategories(c *gin.Context) {
	if cached, found := mcc.Cache.Get(cache.CategoryListKey); found {
		utils.RespondJSON(c, http.StatusOK, "All menu categories", cached)
		return
	}

	var categories []models.MenuCategory
	if err := mcc.DB.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mcc.Cache.Set(cache.CategoryListKey, categories)
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

// CreateCategory (admin)
func (mcc *MenuCategoryController) CreateCategory(c *gin.Context) {
	var body struct {
		RestaurantID uint   `json:"restaurant_id" binding:"required"`
		Name         string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.MenuCategory{
		RestaurantID: body.RestaurantID,
		Name:         body.Name,
	}
	if err := mcc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mcc.Cache.Delete(cache.CategoryListKey)
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory (admin)
func (mcc *MenuCategoryController) UpdateCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.MenuCategory
	if err := mcc.DB.First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		category.Name = body.Name
	}

	if err := mcc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mcc.Cache.Delete(cache.CategoryListKey, cache.MenuListKey)
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory (admin)
func (mcc *MenuCategoryController) DeleteCategory(c *gin.Context) {
	idStr := c.Param("cat_id")
	id, _ := strconv.Atoi(idStr)

	if err := mcc.DB.Delete(&models.MenuCategory{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	mcc.Cache.Delete(cache.CategoryListKey, cache.MenuListKey)
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
