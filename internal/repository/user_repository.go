package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/models"
)

// UserRepository интерфейс для работы с пользователями
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uuid.UUID) error
	ListByRoles(roles ...models.UserRole) ([]models.User, error)
	ListUnenrolledStudents() ([]models.User, error)
}

// userRepository реализация репозитория пользователей
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create создает нового пользователя
func (r *userRepository) Create(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return r.db.Create(user).Error
}

// GetByID получает пользователя по ID
func (r *userRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail получает пользователя по email
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update обновляет пользователя
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete удаляет пользователя
func (r *userRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.User{}, "id = ?", id).Error
}

// ListByRoles получает пользователей с указанными ролями вместе с их классами
func (r *userRepository) ListByRoles(roles ...models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role IN ?", roles).
		Preload("TaughtClasses").
		Preload("Classes").
		Order("created_at DESC").
		Find(&users).Error
	return users, err
}

// ListUnenrolledStudents получает учеников, не зачисленных ни в один класс
func (r *userRepository) ListUnenrolledStudents() ([]models.User, error) {
	var users []models.User
	err := r.db.Where("role = ?", models.RoleStudent).
		Where("id NOT IN (?)", r.db.Model(&models.StudentClass{}).Select("student_id")).
		Find(&users).Error
	return users, err
}
