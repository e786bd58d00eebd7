package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/services"
	"github.com/wajabatt/restaurant-app/utils"
)

type UserController struct {
	DB      *gorm.DB
	Mailer  services.Mailer
	BaseURL string
}

func NewUserController(db *gorm.DB, mailer services.Mailer, baseURL string) *UserController {
	return &UserController{DB: db, Mailer: mailer, BaseURL: baseURL}
}

// Register creates a customer account and mails a verification link. A mail
// transport failure is logged, not fatal: the account still exists and can
// be re-verified later.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phone_number"`
		Password    string `json:"password" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.User
	if err := uc.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("email already registered"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	token := uuid.NewString()
	user := models.User{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Password:          string(hashed),
		Role:              models.RoleCustomer,
		VerificationToken: &token,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := uc.Mailer.Send(user.Email, "Verify your email address",
		services.VerificationBody(uc.BaseURL, token)); err != nil {
		utils.ErrorLogger.Printf("verification email to %s failed: %v", user.Email, err)
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Email)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// VerifyEmail consumes the mailed token.
func (uc *UserController) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("token is required"))
		return
	}

	var user models.User
	if err := uc.DB.Where("verification_token = ?", token).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("invalid verification token"))
		return
	}

	user.IsVerified = true
	user.VerificationToken = nil
	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Email verified", gin.H{"user_id": user.ID})
}

// Login -> return JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"user_role": user.Role,
	})
}

// Logout blacklists the presented token for the rest of its lifetime.
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no token in request"))
		return
	}
	utils.BlacklistToken(token)
	utils.RespondJSON(c, http.StatusOK, "Logged out", nil)
}

func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := currentUser(uc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"email":        user.Email,
		"phone_number": user.PhoneNumber,
		"role":         user.Role,
		"is_verified":  user.IsVerified,
	})
}

// UpdateProfile edits name/phone. Profile edits never reach back into
// historical orders, which carry their own contact snapshot.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, err := currentUser(uc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		Name        *string `json:"name"`
		PhoneNumber *string `json:"phone_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		user.Name = *body.Name
	}
	if body.PhoneNumber != nil {
		user.PhoneNumber = *body.PhoneNumber
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{
		"id":           user.ID,
		"name":         user.Name,
		"phone_number": user.PhoneNumber,
	})
}

type preferencesRequest struct {
	DietaryRestrictions []string `json:"dietary_restrictions"`
	Allergies           []string `json:"allergies"`
	SpicePreference     string   `json:"spice_preference"`
}

// GetPreferences -> the caller's dietary profile; empty defaults when none
// has been saved yet.
func (uc *UserController) GetPreferences(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var prefs models.UserPreference
	if err := uc.DB.Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		prefs = models.UserPreference{UserID: userID}
	}
	if prefs.DietaryRestrictions == nil {
		prefs.DietaryRestrictions = []string{}
	}
	if prefs.Allergies == nil {
		prefs.Allergies = []string{}
	}

	utils.RespondJSON(c, http.StatusOK, "Dietary preferences", prefs)
}

// UpdatePreferences replaces the caller's dietary profile wholesale.
func (uc *UserController) UpdatePreferences(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.DietaryRestrictions == nil {
		req.DietaryRestrictions = []string{}
	}
	if req.Allergies == nil {
		req.Allergies = []string{}
	}

	var prefs models.UserPreference
	err = uc.DB.Where("user_id = ?", userID).First(&prefs).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		prefs = models.UserPreference{
			UserID:              userID,
			DietaryRestrictions: req.DietaryRestrictions,
			Allergies:           req.Allergies,
			SpicePreference:     req.SpicePreference,
		}
		if err := uc.DB.Create(&prefs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	case err != nil:
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	default:
		prefs.DietaryRestrictions = req.DietaryRestrictions
		prefs.Allergies = req.Allergies
		prefs.SpicePreference = req.SpicePreference
		if err := uc.DB.Save(&prefs).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Dietary preferences updated", prefs)
}

// GetMyOrders -> the caller's order history, newest first.
func (uc *UserController) GetMyOrders(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var orders []models.Order
	if err := uc.DB.Preload("OrderItems").Preload("OrderItems.Menu").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order history", orders)
}
