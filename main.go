package main

import (
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cache"
	"github.com/wajabatt/restaurant-app/cart"
	"github.com/wajabatt/restaurant-app/config"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/router"
	"github.com/wajabatt/restaurant-app/services"
	"github.com/wajabatt/restaurant-app/utils"
)

func init() {
	utils.InitLogger()
}

func main() {
	cfg := config.LoadConfig()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)
	if os.Getenv("SEED_DB") == "true" {
		seed(db)
	}

	ttlMin, err := strconv.Atoi(cfg.CacheTTLMin)
	if err != nil || ttlMin <= 0 {
		ttlMin = 10
	}
	store := cache.NewMemoryStore(time.Duration(ttlMin) * time.Minute)

	mailer := services.NewSMTPMailerFromEnv()
	orders := services.NewOrderService(db, mailer, cfg.ManagerEmail, cfg.WhatsAppNumber)

	r := router.SetupRouter(db, router.Deps{
		Cache:   store,
		Carts:   cart.NewManager(),
		Mailer:  mailer,
		Orders:  orders,
		BaseURL: cfg.BaseURL,
	})

	r.SetTrustedProxies([]string{"127.0.0.1"})

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserPreference{},
		&models.Restaurant{},
		&models.MenuCategory{},
		&models.Menu{},
		&models.Order{},
		&models.OrderItem{},
		&models.Reservation{},
		&models.FavoriteDish{},
		&models.Review{},
		&models.NewsletterSubscriber{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// seed installs a demo restaurant with a small menu so a fresh database
// has something to browse. Runs only when SEED_DB=true.
func seed(db *gorm.DB) {
	var count int64
	db.Model(&models.Restaurant{}).Count(&count)
	if count > 0 {
		return
	}

	restaurant := models.Restaurant{
		Name:        "Wajabatt Food",
		Description: "Fresh dishes made from locally sourced ingredients.",
		Address:     "123 Harbor Street",
		Phone:       "+15550100",
	}
	if err := db.Create(&restaurant).Error; err != nil {
		utils.ErrorLogger.Printf("Seed restaurant failed: %v", err)
		return
	}

	starters := models.MenuCategory{RestaurantID: restaurant.ID, Name: "Starters"}
	mains := models.MenuCategory{RestaurantID: restaurant.ID, Name: "Main Courses"}
	for _, cat := range []*models.MenuCategory{&starters, &mains} {
		if err := db.Create(cat).Error; err != nil {
			utils.ErrorLogger.Printf("Seed category failed: %v", err)
			return
		}
	}

	calamariImg := "/images/crispy-calamari.jpg"
	salmonImg := "/images/grilled-salmon.jpg"
	menus := []models.Menu{
		{
			CategoryID:  starters.ID,
			Name:        "Crispy Calamari",
			Description: "Lightly battered calamari served with lemon aioli.",
			Price:       decimal.NewFromFloat(12.99),
			ImageUrl:    &calamariImg,
			Featured:    true,
		},
		{
			CategoryID:  mains.ID,
			Name:        "Grilled Salmon",
			Description: "Atlantic salmon with seasonal vegetables.",
			Price:       decimal.NewFromFloat(24.99),
			ImageUrl:    &salmonImg,
			Featured:    true,
		},
	}
	for i := range menus {
		if err := db.Create(&menus[i]).Error; err != nil {
			utils.ErrorLogger.Printf("Seed menu failed: %v", err)
			return
		}
	}
	utils.InfoLogger.Println("Seed data installed.")
}
