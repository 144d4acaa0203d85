package services

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Abdalla343/kushof/internal/access"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/pkg/database"
	"github.com/Abdalla343/kushof/pkg/storage"
)

// newTestDB открывает временную базу SQLite с миграцией всех моделей
func newTestDB(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase("", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// newTestStorage создает файловое хранилище во временной директории
func newTestStorage(t *testing.T) *storage.Storage {
	t.Helper()
	st, err := storage.NewStorage(t.TempDir(), 1024*1024)
	if err != nil {
		t.Fatalf("failed to create test storage: %v", err)
	}
	return st
}

// createTestUser сохраняет пользователя с указанной ролью
func createTestUser(t *testing.T, db *database.Database, name, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// createTestClass сохраняет класс за преподавателем
func createTestClass(t *testing.T, db *database.Database, teacherID uuid.UUID, name string) *models.Class {
	t.Helper()
	class := &models.Class{
		ID:        uuid.New(),
		Name:      name,
		TeacherID: teacherID,
	}
	if err := db.DB.Create(class).Error; err != nil {
		t.Fatalf("failed to create class: %v", err)
	}
	return class
}

// createTestSubject сохраняет предмет в классе
func createTestSubject(t *testing.T, db *database.Database, classID uuid.UUID, name string) *models.Subject {
	t.Helper()
	subject := &models.Subject{
		ID:      uuid.New(),
		Name:    name,
		ClassID: classID,
	}
	if err := db.DB.Create(subject).Error; err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}
	return subject
}

// enrollStudent зачисляет ученика в класс
func enrollStudent(t *testing.T, db *database.Database, studentID, classID uuid.UUID) {
	t.Helper()
	enrollment := &models.StudentClass{StudentID: studentID, ClassID: classID}
	if err := db.DB.Create(enrollment).Error; err != nil {
		t.Fatalf("failed to enroll student: %v", err)
	}
}

// requesterFor собирает субъекта проверки доступа из пользователя
func requesterFor(user *models.User) access.Requester {
	return access.Requester{
		ID:      user.ID,
		Role:    user.Role,
		IsPrime: user.IsPrime,
	}
}

// pdfUpload собирает multipart.FileHeader с PDF-содержимым для тестов
func pdfUpload(t *testing.T, fileName string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("failed to parse multipart form: %v", err)
	}
	return req.MultipartForm.File["file"][0]
}
