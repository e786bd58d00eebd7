package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

type NewsletterController struct {
	DB *gorm.DB
}

func NewNewsletterController(db *gorm.DB) *NewsletterController {
	return &NewsletterController{DB: db}
}

// Subscribe is idempotent: subscribing the same address twice answers 200.
func (nc *NewsletterController) Subscribe(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	var existing models.NewsletterSubscriber
	if err := nc.DB.Where("email = ?", body.Email).First(&existing).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "You are already subscribed", nil)
		return
	}

	subscriber := models.NewsletterSubscriber{Email: body.Email}
	if err := nc.DB.Create(&subscriber).Error; err != nil {
		// A concurrent subscribe may have won the unique index; the end
		// state is subscribed either way.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondJSON(c, http.StatusOK, "You are already subscribed", nil)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Successfully subscribed to the newsletter", nil)
}
