package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DatabaseURL string
	DBPath      string

	// File Storage
	UploadPath  string
	MaxFileSize int64

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Default admin
	AdminName     string
	AdminEmail    string
	AdminPassword string

	// PayTabs
	PayTabsProfileID int64
	PayTabsServerKey string
	PayTabsRegion    string
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:             getEnv("PORT", "3000"),
		Host:             getEnv("HOST", "0.0.0.0"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DBPath:           getEnv("DB_PATH", "/tmp/kushof.db"),
		UploadPath:       getEnv("UPLOAD_PATH", "./uploads"),
		JWTSecret:        getEnv("JWT_SECRET", "kushof_secret_key"),
		AdminName:        getEnv("ADMIN_NAME", "Admin User"),
		AdminEmail:       getEnv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		PayTabsServerKey: getEnv("PAYTABS_SERVER_KEY", ""),
		PayTabsRegion:    getEnv("PAYTABS_REGION", "EGY"),
	}

	// Парсим числовые значения
	if maxFileSize, err := strconv.ParseInt(getEnv("MAX_FILE_SIZE", "10485760"), 10, 64); err == nil {
		config.MaxFileSize = maxFileSize
	} else {
		config.MaxFileSize = 10 * 1024 * 1024 // 10MB по умолчанию
	}

	if hours, err := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "720")); err == nil {
		config.JWTExpiration = time.Duration(hours) * time.Hour
	} else {
		config.JWTExpiration = 720 * time.Hour // 30 дней по умолчанию
	}

	if profileID, err := strconv.ParseInt(getEnv("PAYTABS_PROFILE_ID", "0"), 10, 64); err == nil {
		config.PayTabsProfileID = profileID
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
