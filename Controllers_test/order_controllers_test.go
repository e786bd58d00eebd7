package Controllers_test

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/controllers"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/services"
)

func setupOrderRouter(db *gorm.DB, mailer services.Mailer, userID uint, role string) *gin.Engine {
	svc := services.NewOrderService(db, mailer, "manager@wajabatt.test", "15550199")
	orderCtrl := controllers.NewOrderController(db, svc)

	router := gin.New()
	auth := router.Group("/", asUser(userID, role))
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.POST("/email-orders", orderCtrl.CreateEmailOrder)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	// Same handlers without a principal, for unauthenticated cases.
	router.POST("/anon/orders", orderCtrl.CreateOrder)
	return router
}

func TestCreateOrderReturnsWhatsAppLink(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	user := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupOrderRouter(db, &fakeMailer{}, user.ID, user.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        2,
		"idempotency_key": uuid.NewString(),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseBody(t, w)
	assert.Equal(t, "Order created", resp["message"])

	data := resp["data"].(map[string]interface{})
	link, ok := data["whatsapp_url"].(string)
	assert.True(t, ok)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/15550199?text="))

	order := data["order"].(map[string]interface{})
	assert.Equal(t, "PENDING", order["status"])
	assert.Equal(t, "49.98", order["total"])
	// Contact defaults from the profile when not supplied.
	assert.Equal(t, "Dana", order["customer_name"])
	assert.Equal(t, "dana@example.com", order["customer_email"])
}

func TestCreateOrderIdempotentRetry(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	user := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupOrderRouter(db, &fakeMailer{}, user.ID, user.Role)

	key := uuid.NewString()
	payload := map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": key,
	}

	first := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusCreated, first.Code)
	firstOrder := parseBody(t, first)["data"].(map[string]interface{})["order"].(map[string]interface{})

	retry := doJSON(t, router, "POST", "/orders", payload)
	assert.Equal(t, http.StatusOK, retry.Code)
	retryResp := parseBody(t, retry)
	assert.Equal(t, "Order already exists for this idempotency key", retryResp["message"])
	retryOrder := retryResp["data"].(map[string]interface{})["order"].(map[string]interface{})
	assert.Equal(t, firstOrder["id"], retryOrder["id"])

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateOrderRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	user := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupOrderRouter(db, &fakeMailer{}, user.ID, user.Role)

	// Missing idempotency key.
	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":  menu.ID,
		"quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Key that is not a UUID.
	w = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": "retry-1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Negative quantity.
	w = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        -1,
		"idempotency_key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown menu item.
	w = doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":         9999,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	router := setupOrderRouter(db, &fakeMailer{}, 0, "")

	w := doJSON(t, router, "POST", "/anon/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEmailOrderSurvivesMailFailure(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	user := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	router := setupOrderRouter(db, &fakeMailer{fail: true}, user.ID, user.Role)

	w := doJSON(t, router, "POST", "/email-orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := parseBody(t, w)
	assert.Equal(t, "Order created, notification email failed", resp["message"])
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, false, data["email_sent"])

	var order models.Order
	assert.NoError(t, db.First(&order).Error)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestEmailOrderSendsToManager(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	user := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	mailer := &fakeMailer{}
	router := setupOrderRouter(db, mailer, user.ID, user.Role)

	w := doJSON(t, router, "POST", "/email-orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	data := parseBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, true, data["email_sent"])
	assert.Equal(t, []string{"manager@wajabatt.test"}, mailer.sent)
}

func TestGetOrderOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	owner := seedUser(t, db, "Dana", "dana@example.com", models.RoleCustomer)
	other := seedUser(t, db, "Eli", "eli@example.com", models.RoleCustomer)

	ownerRouter := setupOrderRouter(db, &fakeMailer{}, owner.ID, owner.Role)
	w := doJSON(t, ownerRouter, "POST", "/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	order := parseBody(t, w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	orderID := int(order["id"].(float64))
	url := "/orders/" + strconv.Itoa(orderID)

	// Owner can read it back.
	w = doJSON(t, ownerRouter, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// A different customer cannot.
	otherRouter := setupOrderRouter(db, &fakeMailer{}, other.ID, other.Role)
	w = doJSON(t, otherRouter, "GET", url, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An admin can.
	adminRouter := setupOrderRouter(db, &fakeMailer{}, other.ID, models.RoleAdmin)
	w = doJSON(t, adminRouter, "GET", url, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	db := newTestDB(t)
	_, _, menu := seedCatalog(t, db)
	admin := seedUser(t, db, "Ada", "ada@example.com", models.RoleAdmin)
	router := setupOrderRouter(db, &fakeMailer{}, admin.ID, admin.Role)

	w := doJSON(t, router, "POST", "/orders", map[string]interface{}{
		"menu_id":         menu.ID,
		"quantity":        1,
		"idempotency_key": uuid.NewString(),
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	order := parseBody(t, w)["data"].(map[string]interface{})["order"].(map[string]interface{})
	url := "/orders/" + strconv.Itoa(int(order["id"].(float64))) + "/status"

	w = doJSON(t, router, "PATCH", url, map[string]interface{}{"status": "SHIPPED"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, "PATCH", url, map[string]interface{}{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.Order
	assert.NoError(t, db.First(&stored).Error)
	assert.Equal(t, models.OrderStatusConfirmed, stored.Status)
}
