package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Exam представляет экзамен по предмету
type Exam struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	SubjectID   uuid.UUID `json:"subject_id" gorm:"type:text;not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	ExamPdfPath string    `json:"exam_pdf_path" gorm:"not null"`
	ExamPdfName string    `json:"exam_pdf_name" gorm:"not null"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Subject Subject      `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Creator User         `json:"creator,omitempty" gorm:"foreignKey:CreatedBy"`
	Answers []ExamAnswer `json:"answers,omitempty" gorm:"foreignKey:ExamID"`
}

// ExamAnswer представляет ответ ученика на экзамен.
// Уникальный индекс (exam_id, student_id) исключает повторную сдачу на уровне хранилища.
type ExamAnswer struct {
	ID            uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	ExamID        uuid.UUID `json:"exam_id" gorm:"type:text;not null;uniqueIndex:idx_exam_answers_exam_student"`
	StudentID     uuid.UUID `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_exam_answers_exam_student"`
	AnswerPdfPath string    `json:"answer_pdf_path" gorm:"not null"`
	AnswerPdfName string    `json:"answer_pdf_name" gorm:"not null"`
	Grade         *float64  `json:"grade,omitempty"`
	Comments      string    `json:"comments,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Связи
	Exam    Exam `json:"exam,omitempty" gorm:"foreignKey:ExamID"`
	Student User `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}
