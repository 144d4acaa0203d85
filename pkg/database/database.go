package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abdalla343/kushof/internal/models"
)

// Database представляет подключение к базе данных
type Database struct {
	DB *gorm.DB
}

// NewDatabase создает новое подключение к базе данных.
// При заданном DSN используется Postgres, иначе локальный файл SQLite.
func NewDatabase(databaseURL, sqlitePath string) (*Database, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dialector = sqlite.Open(sqlitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true, // нарушения уникальности приходят как gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	database := &Database{DB: db}

	// Автомиграция моделей
	if err := database.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return database, nil
}

// Migrate выполняет миграцию базы данных
func (d *Database) Migrate() error {
	if err := d.DB.SetupJoinTable(&models.User{}, "Classes", &models.StudentClass{}); err != nil {
		return err
	}
	if err := d.DB.SetupJoinTable(&models.Class{}, "Students", &models.StudentClass{}); err != nil {
		return err
	}
	return d.DB.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.StudentClass{},
		&models.Subject{},
		&models.Exam{},
		&models.ExamAnswer{},
		&models.Grade{},
	)
}

// Close закрывает подключение к базе данных
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateDefaultAdmin создает учетную запись администратора по умолчанию
func (d *Database) CreateDefaultAdmin(name, email, password string) error {
	var user models.User
	result := d.DB.Where("email = ?", email).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := models.User{
			ID:           uuid.New(),
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			IsApproved:   true,
		}

		if err := d.DB.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create default admin: %w", err)
		}
	}

	return nil
}
