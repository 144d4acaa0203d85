package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Class представляет учебный класс с одним преподавателем
type Class struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	TeacherID   uuid.UUID `json:"teacher_id" gorm:"type:text;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	// Связи
	Teacher  User      `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Students []User    `json:"students,omitempty" gorm:"many2many:student_classes;joinForeignKey:ClassID;joinReferences:StudentID"`
	Subjects []Subject `json:"subjects,omitempty" gorm:"foreignKey:ClassID"`
}

// StudentClass связывает ученика с классом.
// Составной первичный ключ гарантирует уникальность зачисления на уровне хранилища.
type StudentClass struct {
	StudentID uuid.UUID `json:"student_id" gorm:"type:text;primaryKey"`
	ClassID   uuid.UUID `json:"class_id" gorm:"type:text;primaryKey"`
	CreatedAt time.Time `json:"created_at"`
}

// Subject представляет предмет внутри класса
type Subject struct {
	ID          uuid.UUID `json:"id" gorm:"type:text;primary_key"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	ClassID     uuid.UUID `json:"class_id" gorm:"type:text;not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Связи
	Class Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`
}
