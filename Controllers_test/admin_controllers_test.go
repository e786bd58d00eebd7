package Controllers_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/controllers"
	"github.com/wajabatt/restaurant-app/models"
)

func setupAdminRouter(db *gorm.DB, adminID uint) *gin.Engine {
	adminCtrl := controllers.NewAdminController(db)

	router := gin.New()
	admin := router.Group("/admin", asUser(adminID, models.RoleAdmin))
	admin.GET("/dashboard/stats", adminCtrl.GetDashboardStats)
	admin.GET("/users", adminCtrl.GetAllUsers)
	admin.PATCH("/users/:user_id/role", adminCtrl.UpdateUserRole)
	admin.DELETE("/users/:user_id", adminCtrl.DeleteUser)
	return router
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	restaurant, _, _ := seedCatalog(t, db)
	admin := seedUser(t, db, "Ada", "ada@example.com", models.RoleAdmin)
	customer := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)

	orders := []models.Order{
		{
			UserID: customer.ID, Status: models.OrderStatusDelivered,
			Total: mustDecimal(t, "24.99"), CustomerName: "Dana",
			CustomerEmail:  "dana@example.com",
			IdempotencyKey: "d4c0ffee-0000-4000-8000-000000000010",
		},
		{
			UserID: customer.ID, Status: models.OrderStatusDelivered,
			Total: mustDecimal(t, "12.99"), CustomerName: "Dana",
			CustomerEmail:  "dana@example.com",
			IdempotencyKey: "d4c0ffee-0000-4000-8000-000000000011",
		},
		{
			UserID: customer.ID, Status: models.OrderStatusPending,
			Total: mustDecimal(t, "8.50"), CustomerName: "Dana",
			CustomerEmail:  "dana@example.com",
			IdempotencyKey: "d4c0ffee-0000-4000-8000-000000000012",
		},
	}
	for i := range orders {
		assert.NoError(t, db.Create(&orders[i]).Error)
	}
	assert.NoError(t, db.Create(&models.Reservation{
		UserID:       customer.ID,
		RestaurantID: restaurant.ID,
		DateTime:     orders[0].CreatedAt,
		PartySize:    2,
		Status:       models.ReservationStatusPending,
	}).Error)

	router := setupAdminRouter(db, admin.ID)
	w := doJSON(t, router, "GET", "/admin/dashboard/stats", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["total_orders"])
	// Only delivered orders count as revenue, summed exactly.
	assert.Equal(t, "37.98", data["total_revenue"])
	assert.Equal(t, float64(1), data["pending_reservations"])
	assert.Equal(t, float64(2), data["total_users"])

	orderStats := data["order_stats"].(map[string]interface{})
	assert.Equal(t, float64(2), orderStats["delivered"])
	assert.Equal(t, float64(1), orderStats["pending"])
	assert.Equal(t, float64(0), orderStats["cancelled"])
}

func TestUpdateUserRole(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "Ada", "ada@example.com", models.RoleAdmin)
	customer := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupAdminRouter(db, admin.ID)
	url := "/admin/users/" + strconv.Itoa(int(customer.ID)) + "/role"

	w := doJSON(t, router, "PATCH", url, map[string]interface{}{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "PATCH", url, map[string]interface{}{"role": "admin"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	assert.NoError(t, db.First(&stored, customer.ID).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}

func TestDeleteUserGuardsSelf(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "Ada", "ada@example.com", models.RoleAdmin)
	customer := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupAdminRouter(db, admin.ID)

	// An admin cannot delete their own account.
	w := doJSON(t, router, "DELETE", "/admin/users/"+strconv.Itoa(int(admin.ID)), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "DELETE", "/admin/users/"+strconv.Itoa(int(customer.ID)), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
