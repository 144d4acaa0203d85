package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Abdalla343/kushof/internal/models"
)

// ExamRepository интерфейс для работы с экзаменами и ответами
type ExamRepository interface {
	Create(exam *models.Exam) error
	GetByID(id uuid.UUID) (*models.Exam, error)
	ListByTeacher(teacherID uuid.UUID) ([]models.Exam, error)
	ListForStudent(studentID uuid.UUID) ([]models.Exam, error)
	CreateAnswer(answer *models.ExamAnswer) error
	GetAnswerByID(id uuid.UUID) (*models.ExamAnswer, error)
	HasAnswer(examID, studentID uuid.UUID) (bool, error)
}

// examRepository реализация репозитория экзаменов
type examRepository struct {
	db *gorm.DB
}

// NewExamRepository создает новый репозиторий экзаменов
func NewExamRepository(db *gorm.DB) ExamRepository {
	return &examRepository{db: db}
}

// Create создает новый экзамен
func (r *examRepository) Create(exam *models.Exam) error {
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}
	return r.db.Create(exam).Error
}

// GetByID получает экзамен вместе с предметом и его классом
func (r *examRepository) GetByID(id uuid.UUID) (*models.Exam, error) {
	var exam models.Exam
	err := r.db.Preload("Subject.Class").First(&exam, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

// ListByTeacher получает экзамены всех классов преподавателя со всеми ответами
func (r *examRepository) ListByTeacher(teacherID uuid.UUID) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.
		Joins("JOIN subjects ON subjects.id = exams.subject_id").
		Joins("JOIN classes ON classes.id = subjects.class_id").
		Where("classes.teacher_id = ?", teacherID).
		Preload("Subject.Class").
		Preload("Creator").
		Preload("Answers.Student").
		Order("exams.created_at DESC").
		Find(&exams).Error
	return exams, err
}

// ListForStudent получает экзамены классов, в которые зачислен ученик,
// с его собственными ответами
func (r *examRepository) ListForStudent(studentID uuid.UUID) ([]models.Exam, error) {
	var exams []models.Exam
	err := r.db.
		Joins("JOIN subjects ON subjects.id = exams.subject_id").
		Joins("JOIN student_classes sc ON sc.class_id = subjects.class_id").
		Where("sc.student_id = ?", studentID).
		Preload("Subject.Class").
		Preload("Creator").
		Preload("Answers", "student_id = ?", studentID).
		Order("exams.created_at DESC").
		Find(&exams).Error
	return exams, err
}

// CreateAnswer сохраняет ответ ученика
func (r *examRepository) CreateAnswer(answer *models.ExamAnswer) error {
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	return r.db.Create(answer).Error
}

// GetAnswerByID получает ответ вместе с цепочкой экзамен-предмет-класс
func (r *examRepository) GetAnswerByID(id uuid.UUID) (*models.ExamAnswer, error) {
	var answer models.ExamAnswer
	err := r.db.Preload("Exam.Subject.Class").Preload("Student").First(&answer, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &answer, nil
}

// HasAnswer проверяет, сдавал ли ученик ответ на экзамен
func (r *examRepository) HasAnswer(examID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.Model(&models.ExamAnswer{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error
	return count > 0, err
}
