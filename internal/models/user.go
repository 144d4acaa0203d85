package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole определяет роли пользователей
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleTeacher UserRole = "teacher"
	RoleStudent UserRole = "student"
)

// User представляет пользователя системы
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Name         string    `json:"name" gorm:"not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"default:'student'"`
	IsApproved   bool      `json:"is_approved" gorm:"default:false"` // учителя подтверждает администратор
	IsPrime      bool      `json:"is_prime" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	TaughtClasses []Class `json:"taught_classes,omitempty" gorm:"foreignKey:TeacherID"`
	Classes       []Class `json:"classes,omitempty" gorm:"many2many:student_classes;joinForeignKey:StudentID;joinReferences:ClassID"`
}
