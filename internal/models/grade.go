package models

import (
	"time"

	"github.com/google/uuid"
)

// Grade представляет оценку ученика по предмету.
// Уникальный индекс (student_id, subject_id, assignment) допускает несколько
// оцененных работ по предмету, но не более одной оценки на метку работы.
type Grade struct {
	ID         uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	StudentID  uuid.UUID `json:"student_id" gorm:"type:text;not null;uniqueIndex:idx_grades_student_subject_assignment"`
	SubjectID  uuid.UUID `json:"subject_id" gorm:"type:text;not null;uniqueIndex:idx_grades_student_subject_assignment"`
	Grade      float64   `json:"grade" gorm:"not null"` // 0-100
	Assignment *string   `json:"assignment,omitempty" gorm:"uniqueIndex:idx_grades_student_subject_assignment"`
	Comments   string    `json:"comments,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Связи
	Student User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}
