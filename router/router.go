package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cache"
	"github.com/wajabatt/restaurant-app/cart"
	"github.com/wajabatt/restaurant-app/controllers"
	"github.com/wajabatt/restaurant-app/middlewares"
	"github.com/wajabatt/restaurant-app/services"
)

// Deps carries the injected collaborators. Nothing here is package state:
// tests construct an isolated set per case.
type Deps struct {
	Cache   cache.Store
	Carts   *cart.Manager
	Mailer  services.Mailer
	Orders  *services.OrderService
	BaseURL string
}

func SetupRouter(db *gorm.DB, deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(100, 60).RateLimit())

	userCtrl := controllers.NewUserController(db, deps.Mailer, deps.BaseURL)
	restaurantCtrl := controllers.NewRestaurantController(db)
	categoryCtrl := controllers.NewMenuCategoryController(db, deps.Cache)
	menuCtrl := controllers.NewMenuController(db, deps.Cache)
	cartCtrl := controllers.NewCartController(db, deps.Carts)
	orderCtrl := controllers.NewOrderController(db, deps.Orders)
	favoriteCtrl := controllers.NewFavoriteController(db)
	reviewCtrl := controllers.NewReviewController(db)
	reservationCtrl := controllers.NewReservationController(db)
	newsletterCtrl := controllers.NewNewsletterController(db)
	adminCtrl := controllers.NewAdminController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}
	r.GET("/auth/verify", userCtrl.VerifyEmail)

	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/categories", categoryCtrl.GetAllCategories)
	r.GET("/menus", menuCtrl.GetAllMenus)
	r.GET("/menus/featured", menuCtrl.GetFeaturedMenus)
	r.GET("/menus/by-category", menuCtrl.GetMenuByCategory)
	r.GET("/menus/:menu_id", menuCtrl.GetMenuByID)
	r.GET("/menus/:menu_id/reviews", reviewCtrl.GetReviews)

	r.POST("/newsletter", newsletterCtrl.Subscribe)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.POST("/logout", userCtrl.Logout)
		auth.GET("/profile", userCtrl.GetProfile)
		auth.PATCH("/profile", userCtrl.UpdateProfile)
		auth.GET("/profile/orders", userCtrl.GetMyOrders)
		auth.GET("/profile/preferences", userCtrl.GetPreferences)
		auth.PUT("/profile/preferences", userCtrl.UpdatePreferences)

		// CART (session-scoped, in memory)
		auth.GET("/cart", cartCtrl.GetCart)
		auth.POST("/cart/items", cartCtrl.AddItem)
		auth.PATCH("/cart/items/:menu_id", cartCtrl.UpdateItem)
		auth.DELETE("/cart/items/:menu_id", cartCtrl.RemoveItem)
		auth.DELETE("/cart", cartCtrl.ClearCart)

		// ORDERS (channel A: whatsapp handoff, channel B: operator email)
		auth.POST("/orders", orderCtrl.CreateOrder)
		auth.POST("/email-orders", orderCtrl.CreateEmailOrder)
		auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)

		// FAVORITES
		auth.GET("/user/favorites", favoriteCtrl.GetFavorites)
		auth.POST("/user/favorites/:menu_id", favoriteCtrl.AddFavorite)
		auth.DELETE("/user/favorites/:menu_id", favoriteCtrl.RemoveFavorite)

		// REVIEWS
		auth.POST("/menus/:menu_id/reviews", reviewCtrl.CreateReview)

		// RESERVATIONS
		auth.POST("/reservations", reservationCtrl.CreateReservation)
		auth.GET("/reservations", reservationCtrl.GetMyReservations)
		auth.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware(), middlewares.AdminOnly())
	{
		admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)

		// MENUS (writes invalidate the catalog cache)
		admin.GET("/menus", menuCtrl.GetAllMenus)
		admin.POST("/menus", menuCtrl.CreateMenu)
		admin.PATCH("/menus/:menu_id", menuCtrl.UpdateMenu)
		admin.DELETE("/menus/:menu_id", menuCtrl.DeleteMenu)

		// CATEGORIES
		admin.POST("/categories", categoryCtrl.CreateCategory)
		admin.PATCH("/categories/:cat_id", categoryCtrl.UpdateCategory)
		admin.DELETE("/categories/:cat_id", categoryCtrl.DeleteCategory)

		// ORDERS (status change is the only permitted mutation)
		admin.GET("/orders", orderCtrl.GetAllOrders)
		admin.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		admin.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)

		// RESERVATIONS
		admin.GET("/reservations", reservationCtrl.GetAllReservations)
		admin.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

		// USERS
		admin.GET("/users", adminCtrl.GetAllUsers)
		admin.PATCH("/users/:user_id/role", adminCtrl.UpdateUserRole)
		admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)
	}

	return r
}
