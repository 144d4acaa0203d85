package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Abdalla343/kushof/internal/models"
)

// GradeRepository интерфейс для работы с оценками
type GradeRepository interface {
	UpsertBatch(grades []models.Grade) error
	GetByKey(studentID, subjectID uuid.UUID, assignment *string) (*models.Grade, error)
	ListBySubject(subjectID uuid.UUID) ([]models.Grade, error)
	ListByStudent(studentID uuid.UUID) ([]models.Grade, error)
	ListByStudentAndSubject(studentID, subjectID uuid.UUID) ([]models.Grade, error)
}

// gradeRepository реализация репозитория оценок
type gradeRepository struct {
	db *gorm.DB
}

// NewGradeRepository создает новый репозиторий оценок
func NewGradeRepository(db *gorm.DB) GradeRepository {
	return &gradeRepository{db: db}
}

// UpsertBatch сохраняет пакет оценок одной транзакцией.
// Существующая оценка по ключу (student_id, subject_id, assignment)
// перезаписывается, дубликат не создается.
func (r *gradeRepository) UpsertBatch(grades []models.Grade) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i := range grades {
			if grades[i].ID == uuid.Nil {
				grades[i].ID = uuid.New()
			}
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "student_id"},
				{Name: "subject_id"},
				{Name: "assignment"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"grade", "comments", "updated_at"}),
		}).Create(&grades).Error
	})
}

// GetByKey получает оценку по ее естественному ключу (student_id, subject_id, assignment)
func (r *gradeRepository) GetByKey(studentID, subjectID uuid.UUID, assignment *string) (*models.Grade, error) {
	query := r.db.Where("student_id = ? AND subject_id = ?", studentID, subjectID)
	if assignment == nil {
		query = query.Where("assignment IS NULL")
	} else {
		query = query.Where("assignment = ?", *assignment)
	}

	var grade models.Grade
	if err := query.First(&grade).Error; err != nil {
		return nil, err
	}
	return &grade, nil
}

// ListBySubject получает оценки всех учеников по предмету
func (r *gradeRepository) ListBySubject(subjectID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.Where("subject_id = ?", subjectID).
		Preload("Student").
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}

// ListByStudent получает все оценки ученика по всем предметам
func (r *gradeRepository) ListByStudent(studentID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.Where("student_id = ?", studentID).
		Preload("Subject.Class").
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}

// ListByStudentAndSubject получает оценки ученика по конкретному предмету
func (r *gradeRepository) ListByStudentAndSubject(studentID, subjectID uuid.UUID) ([]models.Grade, error) {
	var grades []models.Grade
	err := r.db.Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Order("created_at DESC").
		Find(&grades).Error
	return grades, err
}
