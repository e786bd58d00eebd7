package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type FavoriteController struct {
	DB *gorm.DB
}

func NewFavoriteController(db *gorm.DB) *FavoriteController {
	return &FavoriteController{DB: db}
}

// GetFavorites -> the caller's favorite items with category detail.
func (fc *FavoriteController) GetFavorites(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var favorites []models.FavoriteDish
	if err := fc.DB.Preload("Menu").Preload("Menu.Category").
		Where("user_id = ?", userID).
		Find(&favorites).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	items := make([]models.Menu, 0, len(favorites))
	for _, f := range favorites {
		items = append(items, f.Menu)
	}

	utils.RespondJSON(c, http.StatusOK, "Favorite dishes", items)
}

// AddFavorite creates the (user, menu) association. Both a repeat call and a
// lost race against a concurrent toggle land on the unique index and are
// treated as success: the end state is "favorited" either way.
func (fc *FavoriteController) AddFavorite(c *gin.Context) {
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

	var menu models.Menu
	if err := fc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	var existing models.FavoriteDish
	if err := fc.DB.Where("user_id = ? AND menu_id = ?", userID, menuID).
		First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Already favorited", gin.H{"menu_id": menuID})
		return
	}

	favorite := models.FavoriteDish{UserID: userID, MenuID: uint(menuID)}
	if err := fc.DB.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondJSON(c, http.StatusOK, "Already favorited", gin.H{"menu_id": menuID})
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Dish favorited", gin.H{"menu_id": menuID})
}

// RemoveFavorite deletes the association; deleting an absent one is a no-op.
func (fc *FavoriteController) RemoveFavorite(c *gin.Context) {
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

	if err := fc.DB.Where("user_id = ? AND menu_id = ?", userID, menuID).
		Delete(&models.FavoriteDish{}).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dish unfavorited", gin.H{"menu_id": menuID})
}
