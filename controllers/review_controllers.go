package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

type reviewResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateReview appends a rating+comment to a menu item.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	user, err := currentUser(rc.DB, c)
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
		Rating  int    `json:"rating" binding:"required"`
		Comment string `json:"comment" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if body.Rating < 1 || body.Rating > 5 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("rating must be between 1 and 5"))
		return
	}

	var menu models.Menu
	if err := rc.DB.First(&menu, menuID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("menu item not found"))
		return
	}

	review := models.Review{
		UserID:  user.ID,
		MenuID:  uint(menuID),
		Rating:  body.Rating,
		Comment: body.Comment,
	}
	if err := rc.DB.Create(&review).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Review added", reviewResponse{
		ID:        review.ID,
		UserID:    review.UserID,
		UserName:  user.Name,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	})
}

// GetReviews -> reviews for one menu item, newest first.
func (rc *ReviewController) GetReviews(c *gin.Context) {
	menuID, err := strconv.Atoi(c.Param("menu_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu id"))
		return
	}

	var reviews []models.Review
	if err := rc.DB.Preload("User").
		Where("menu_id = ?", menuID).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	formatted := make([]reviewResponse, 0, len(reviews))
	for _, r := range reviews {
		formatted = append(formatted, reviewResponse{
			ID:        r.ID,
			UserID:    r.UserID,
			UserName:  r.User.Name,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		})
	}

	utils.RespondJSON(c, http.StatusOK, "Reviews", formatted)
}
