package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Ошибки валидации загружаемых файлов
var (
	ErrFileTooLarge = errors.New("file size exceeds maximum allowed size")
	ErrNotPDF       = errors.New("only PDF files are allowed")
)

// Категории файлов
const (
	CategoryExams   = "exams"
	CategoryAnswers = "answers"
)

// Storage представляет файловое хранилище PDF-документов
type Storage struct {
	basePath    string
	maxFileSize int64
}

// NewStorage создает новое файловое хранилище
func NewStorage(basePath string, maxFileSize int64) (*Storage, error) {
	// Создаем базовую директорию и подкаталоги категорий
	for _, dir := range []string{basePath, filepath.Join(basePath, CategoryExams), filepath.Join(basePath, CategoryAnswers)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	return &Storage{
		basePath:    basePath,
		maxFileSize: maxFileSize,
	}, nil
}

// SaveExam сохраняет PDF экзамена
func (s *Storage) SaveExam(file *multipart.FileHeader) (string, error) {
	return s.save(file, CategoryExams)
}

// SaveAnswer сохраняет PDF ответа ученика
func (s *Storage) SaveAnswer(file *multipart.FileHeader) (string, error) {
	return s.save(file, CategoryAnswers)
}

// save сохраняет загруженный файл в указанную категорию
func (s *Storage) save(file *multipart.FileHeader, category string) (string, error) {
	// Проверяем размер файла
	if file.Size > s.maxFileSize {
		return "", ErrFileTooLarge
	}

	// Принимаем только PDF
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".pdf" && file.Header.Get("Content-Type") != "application/pdf" {
		return "", ErrNotPDF
	}

	// Генерируем уникальное имя файла
	fileName := uuid.New().String() + ".pdf"
	filePath := filepath.Join(s.basePath, category, fileName)

	// Открываем исходный файл
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// Создаем целевой файл
	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	// Копируем содержимое
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to copy file: %w", err)
	}

	return filePath, nil
}

// Remove удаляет файл; отсутствие файла не считается ошибкой
func (s *Storage) Remove(filePath string) error {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists проверяет, что файл существует на диске.
// Запись в базе и файловая система могут разойтись.
func (s *Storage) Exists(filePath string) bool {
	info, err := os.Stat(filePath)
	return err == nil && !info.IsDir()
}
