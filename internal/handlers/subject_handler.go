package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/services"
)

// SubjectHandler представляет обработчик предметов
type SubjectHandler struct {
	subjectService *services.SubjectService
}

// NewSubjectHandler создает новый обработчик предметов
func NewSubjectHandler(subjectService *services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		subjectService: subjectService,
	}
}

// CreateSubjectRequest представляет запрос на создание предмета
type CreateSubjectRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	ClassID     uuid.UUID `json:"classId" binding:"required"`
}

// UpdateSubjectRequest представляет запрос на обновление предмета
type UpdateSubjectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateSubject создает предмет в классе преподавателя
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject name and class ID are required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	subject, err := h.subjectService.CreateSubject(requester, req.Name, req.Description, req.ClassID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, subject)
}

// GetSubjectsByClass возвращает предметы класса
func (h *SubjectHandler) GetSubjectsByClass(c *gin.Context) {
	classID, ok := parseIDParam(c, "classId")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	subjects, err := h.subjectService.ListByClass(requester, classID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subjects)
}

// GetSubject возвращает предмет; владелец класса получает и список учеников
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	details, err := h.subjectService.GetSubject(requester, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// UpdateSubject обновляет предмет
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject name is required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	subject, err := h.subjectService.UpdateSubject(requester, subjectID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subject)
}
