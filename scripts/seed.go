package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/pkg/database"
)

func main() {
	// Подключаемся к базе данных
	db, err := database.NewDatabase("", "test.db")
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Создаем администратора по умолчанию
	if err := db.CreateDefaultAdmin("Admin User", "admin@example.com", "admin123"); err != nil {
		log.Fatalf("Failed to create default admin: %v", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// Создаем тестовых пользователей
	teacherID := uuid.New()
	student1ID := uuid.New()
	student2ID := uuid.New()
	student3ID := uuid.New()

	users := []models.User{
		{
			ID:           teacherID,
			Name:         "Ahmed Hassan",
			Email:        "teacher@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleTeacher,
			IsApproved:   true,
			IsPrime:      true,
		},
		{
			ID:           student1ID,
			Name:         "Omar Ali",
			Email:        "student1@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		},
		{
			ID:           student2ID,
			Name:         "Sara Mohamed",
			Email:        "student2@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		},
		{
			ID:           student3ID,
			Name:         "Laila Ibrahim",
			Email:        "student3@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleStudent,
		},
	}

	for _, user := range users {
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", user.Email, err)
		}
	}

	// Создаем класс с предметами
	classID := uuid.New()
	class := models.Class{
		ID:          classID,
		Name:        "Grade 11 Science",
		Description: "Science track, first semester",
		TeacherID:   teacherID,
	}
	if err := db.DB.Create(&class).Error; err != nil {
		log.Fatalf("Failed to create class: %v", err)
	}

	subjects := []models.Subject{
		{
			ID:          uuid.New(),
			Name:        "Physics",
			Description: "Mechanics and thermodynamics",
			ClassID:     classID,
		},
		{
			ID:          uuid.New(),
			Name:        "Mathematics",
			Description: "Algebra and calculus",
			ClassID:     classID,
		},
	}
	for _, subject := range subjects {
		if err := db.DB.Create(&subject).Error; err != nil {
			log.Fatalf("Failed to create subject %s: %v", subject.Name, err)
		}
	}

	// Зачисляем двух учеников, третий остается незачисленным
	enrollments := []models.StudentClass{
		{StudentID: student1ID, ClassID: classID},
		{StudentID: student2ID, ClassID: classID},
	}
	for _, enrollment := range enrollments {
		if err := db.DB.Create(&enrollment).Error; err != nil {
			log.Fatalf("Failed to enroll student: %v", err)
		}
	}

	// Выставляем пару оценок по физике
	assignment := "Midterm"
	grades := []models.Grade{
		{
			ID:         uuid.New(),
			StudentID:  student1ID,
			SubjectID:  subjects[0].ID,
			Grade:      92,
			Assignment: &assignment,
			Comments:   "Excellent work",
		},
		{
			ID:         uuid.New(),
			StudentID:  student2ID,
			SubjectID:  subjects[0].ID,
			Grade:      78,
			Assignment: &assignment,
		},
	}
	for _, grade := range grades {
		if err := db.DB.Create(&grade).Error; err != nil {
			log.Fatalf("Failed to create grade: %v", err)
		}
	}

	fmt.Println("Seed data created successfully:")
	fmt.Println("  admin@example.com / admin123")
	fmt.Println("  teacher@example.com / password123 (approved, premium)")
	fmt.Println("  student1@example.com, student2@example.com / password123 (enrolled)")
	fmt.Println("  student3@example.com / password123 (not enrolled)")
}
