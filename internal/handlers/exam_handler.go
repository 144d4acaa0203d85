package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/services"
)

// ExamHandler представляет обработчик экзаменов
type ExamHandler struct {
	examService *services.ExamService
}

// NewExamHandler создает новый обработчик экзаменов
func NewExamHandler(examService *services.ExamService) *ExamHandler {
	return &ExamHandler{
		examService: examService,
	}
}

// CreateExam публикует экзамен с PDF-файлом (multipart/form-data)
func (h *ExamHandler) CreateExam(c *gin.Context) {
	subjectIDStr := c.PostForm("subject_id")
	title := c.PostForm("title")
	description := c.PostForm("description")

	if subjectIDStr == "" || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject ID and title are required"})
		return
	}

	subjectID, err := uuid.Parse(subjectIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subject ID format"})
		return
	}

	file, err := c.FormFile("examPdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Exam PDF file is required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	exam, err := h.examService.PublishExam(requester, subjectID, title, description, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, exam)
}

// GetExams возвращает экзамены пользователя
func (h *ExamHandler) GetExams(c *gin.Context) {
	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	exams, err := h.examService.ListExams(requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, exams)
}

// GetExam возвращает детали экзамена
func (h *ExamHandler) GetExam(c *gin.Context) {
	examID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	exam, err := h.examService.GetExam(requester, examID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, exam)
}

// SubmitAnswer принимает PDF-ответ ученика (multipart/form-data)
func (h *ExamHandler) SubmitAnswer(c *gin.Context) {
	examID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, err := c.FormFile("answerPdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer PDF file is required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	answer, err := h.examService.SubmitAnswer(requester, examID, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, answer)
}

// DownloadExam отдает PDF экзамена
func (h *ExamHandler) DownloadExam(c *gin.Context) {
	examID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	path, name, err := h.examService.DownloadExam(requester, examID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(path, name)
}

// DownloadAnswer отдает PDF ответа ученика (только владельцу класса)
func (h *ExamHandler) DownloadAnswer(c *gin.Context) {
	answerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	path, name, err := h.examService.DownloadAnswer(requester, answerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.FileAttachment(path, name)
}
