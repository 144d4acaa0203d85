package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/services"
)

// ClassHandler представляет обработчик классов
type ClassHandler struct {
	classService *services.ClassService
}

// NewClassHandler создает новый обработчик классов
func NewClassHandler(classService *services.ClassService) *ClassHandler {
	return &ClassHandler{
		classService: classService,
	}
}

// CreateClassRequest представляет запрос на создание класса
type CreateClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddStudentsRequest представляет запрос на зачисление учеников
type AddStudentsRequest struct {
	StudentIDs []uuid.UUID `json:"studentIds"`
}

// CreateClass создает новый класс (только для преподавателя)
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Class name is required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	class, err := h.classService.CreateClass(requester.ID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, class)
}

// GetClasses возвращает классы пользователя
func (h *ClassHandler) GetClasses(c *gin.Context) {
	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	classes, err := h.classService.ListClasses(requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, classes)
}

// GetAvailableStudents возвращает учеников без зачислений (премиум-функция)
func (h *ClassHandler) GetAvailableStudents(c *gin.Context) {
	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	students, err := h.classService.AvailableStudents(requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

// GetClass возвращает детали класса
func (h *ClassHandler) GetClass(c *gin.Context) {
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	class, err := h.classService.GetClass(requester, classID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, class)
}

// AddStudents зачисляет учеников в класс
func (h *ClassHandler) AddStudents(c *gin.Context) {
	classID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please provide an array of student IDs"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	if err := h.classService.AddStudents(requester, classID, req.StudentIDs); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Students added successfully"})
}
