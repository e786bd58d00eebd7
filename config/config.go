package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	DBDriver       string // "mysql" or "sqlite"
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	SQLitePath     string
	JWTSecret      string
	BaseURL        string
	ManagerEmail   string
	WhatsAppNumber string
	CacheTTLMin    string
	Port           string
}

func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		DBDriver:       getenv("DB_DRIVER", "mysql"),
		DBHost:         getenv("DB_HOST", "127.0.0.1"),
		DBPort:         getenv("DB_PORT", "3306"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         getenv("DB_NAME", "restaurant"),
		SQLitePath:     getenv("SQLITE_PATH", "restaurant.db"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		BaseURL:        getenv("BASE_URL", "http://localhost:8080"),
		ManagerEmail:   os.Getenv("MANAGER_EMAIL"),
		WhatsAppNumber: os.Getenv("WHATSAPP_NUMBER"),
		CacheTTLMin:    getenv("CATALOG_CACHE_TTL_MINUTES", "10"),
		Port:           getenv("PORT", "8080"),
	}
}

// InitDB opens the configured database. MySQL for deployments, SQLite for
// local development.
func InitDB() (*gorm.DB, error) {
	cfg := LoadConfig()

	// TranslateError maps driver-specific constraint failures onto gorm's
	// sentinel errors; the duplicate-insert handling relies on it.
	if cfg.DBDriver == "sqlite" {
		return gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{TranslateError: true})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mysql: %w", err)
	}
	return db, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
