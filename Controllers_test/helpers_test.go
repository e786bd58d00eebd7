package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wajabatt/restaurant-app/cache"
	"github.com/wajabatt/restaurant-app/models"
	"github.com/wajabatt/restaurant-app/utils"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
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
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// asUser stands in for the auth middleware so handlers see a principal
// without a real token round trip.
func asUser(userID uint, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

func newTestCache() cache.Store {
	return cache.NewMemoryStore(10 * time.Minute)
}

// seedCatalog installs one restaurant, one category and one menu item and
// returns them for assertions.
func seedCatalog(t *testing.T, db *gorm.DB) (models.Restaurant, models.MenuCategory, models.Menu) {
	t.Helper()

	restaurant := models.Restaurant{Name: "Wajabatt Food", Phone: "+15550100"}
	if err := db.Create(&restaurant).Error; err != nil {
		t.Fatalf("seed restaurant: %v", err)
	}

	category := models.MenuCategory{RestaurantID: restaurant.ID, Name: "Main Courses"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	menu := models.Menu{
		CategoryID: category.ID,
		Name:       "Grilled Salmon",
		Price:      decimal.RequireFromString("24.99"),
	}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return restaurant, category, menu
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func seedUser(t *testing.T, db *gorm.DB, name, email, role string) models.User {
	t.Helper()
	user := models.User{
		Name:        name,
		Email:       email,
		Password:    "not-a-real-hash",
		Role:        role,
		PhoneNumber: "+15550123",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func doJSON(t *testing.T, router *gin.Engine, method, url string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func parseBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	return resp
}

// fakeMailer records sends and can be told to fail.
type fakeMailer struct {
	fail bool
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if f.fail {
		return assert.AnError
	}
	f.sent = append(f.sent, to)
	return nil
}
