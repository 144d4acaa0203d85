package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Abdalla343/kushof/internal/models"
)

// ClassRepository интерфейс для работы с классами и зачислениями
type ClassRepository interface {
	Create(class *models.Class) error
	GetByID(id uuid.UUID) (*models.Class, error)
	ListByTeacher(teacherID uuid.UUID) ([]models.Class, error)
	ListByStudent(studentID uuid.UUID) ([]models.Class, error)
	AddStudents(classID uuid.UUID, studentIDs []uuid.UUID) error
	IsEnrolled(studentID, classID uuid.UUID) (bool, error)
}

// classRepository реализация репозитория классов
type classRepository struct {
	db *gorm.DB
}

// NewClassRepository создает новый репозиторий классов
func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

// Create создает новый класс
func (r *classRepository) Create(class *models.Class) error {
	if class.ID == uuid.Nil {
		class.ID = uuid.New()
	}
	return r.db.Create(class).Error
}

// GetByID получает класс со списком учеников и предметов
func (r *classRepository) GetByID(id uuid.UUID) (*models.Class, error) {
	var class models.Class
	err := r.db.Preload("Students").Preload("Subjects").First(&class, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

// ListByTeacher получает классы преподавателя с учениками и предметами
func (r *classRepository) ListByTeacher(teacherID uuid.UUID) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.Where("teacher_id = ?", teacherID).
		Preload("Students").
		Preload("Subjects").
		Find(&classes).Error
	return classes, err
}

// ListByStudent получает классы, в которые зачислен ученик
func (r *classRepository) ListByStudent(studentID uuid.UUID) ([]models.Class, error) {
	var classes []models.Class
	err := r.db.
		Joins("JOIN student_classes sc ON sc.class_id = classes.id").
		Where("sc.student_id = ?", studentID).
		Preload("Subjects").
		Preload("Teacher").
		Find(&classes).Error
	return classes, err
}

// AddStudents зачисляет учеников в класс, игнорируя уже существующие записи
func (r *classRepository) AddStudents(classID uuid.UUID, studentIDs []uuid.UUID) error {
	rows := make([]models.StudentClass, 0, len(studentIDs))
	for _, studentID := range studentIDs {
		rows = append(rows, models.StudentClass{
			StudentID: studentID,
			ClassID:   classID,
			CreatedAt: time.Now(),
		})
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// IsEnrolled проверяет, зачислен ли ученик в класс
func (r *classRepository) IsEnrolled(studentID, classID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.StudentClass{}).
		Where("student_id = ? AND class_id = ?", studentID, classID).
		Count(&count).Error
	return count > 0, err
}
