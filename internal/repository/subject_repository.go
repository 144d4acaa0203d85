package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/models"
)

// SubjectRepository интерфейс для работы с предметами
type SubjectRepository interface {
	Create(subject *models.Subject) error
	GetByID(id uuid.UUID) (*models.Subject, error)
	ListByClass(classID uuid.UUID) ([]models.Subject, error)
	Update(subject *models.Subject) error
}

// subjectRepository реализация репозитория предметов
type subjectRepository struct {
	db *gorm.DB
}

// NewSubjectRepository создает новый репозиторий предметов
func NewSubjectRepository(db *gorm.DB) SubjectRepository {
	return &subjectRepository{db: db}
}

// Create создает новый предмет
func (r *subjectRepository) Create(subject *models.Subject) error {
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}
	return r.db.Create(subject).Error
}

// GetByID получает предмет вместе с его классом
func (r *subjectRepository) GetByID(id uuid.UUID) (*models.Subject, error) {
	var subject models.Subject
	err := r.db.Preload("Class").First(&subject, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ListByClass получает все предметы класса
func (r *subjectRepository) ListByClass(classID uuid.UUID) ([]models.Subject, error) {
	var subjects []models.Subject
	err := r.db.Where("class_id = ?", classID).Find(&subjects).Error
	return subjects, err
}

// Update обновляет предмет
func (r *subjectRepository) Update(subject *models.Subject) error {
	return r.db.Save(subject).Error
}
