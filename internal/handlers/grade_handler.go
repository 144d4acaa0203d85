package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/services"
)

// GradeHandler представляет обработчик оценок
type GradeHandler struct {
	gradeService *services.GradeService
}

// NewGradeHandler создает новый обработчик оценок
func NewGradeHandler(gradeService *services.GradeService) *GradeHandler {
	return &GradeHandler{
		gradeService: gradeService,
	}
}

// AssignGradesRequest представляет запрос на пакетное выставление оценок
type AssignGradesRequest struct {
	SubjectID uuid.UUID             `json:"subjectId" binding:"required"`
	Grades    []services.GradeEntry `json:"grades" binding:"required"`
}

// AssignGrades выставляет пакет оценок по предмету
func (h *GradeHandler) AssignGrades(c *gin.Context) {
	var req AssignGradesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Subject ID and grades array are required"})
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	grades, err := h.gradeService.AssignGrades(requester, req.SubjectID, req.Grades)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, grades)
}

// GetSubjectGrades возвращает оценки всех учеников по предмету
func (h *GradeHandler) GetSubjectGrades(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "subjectId")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	grades, err := h.gradeService.SubjectGrades(requester, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grades)
}

// GetMyGrades возвращает ученику все его оценки
func (h *GradeHandler) GetMyGrades(c *gin.Context) {
	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	grades, err := h.gradeService.MyGrades(requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grades)
}

// GetMySubjectGrade возвращает ученику его оценки по предмету
func (h *GradeHandler) GetMySubjectGrade(c *gin.Context) {
	subjectID, ok := parseIDParam(c, "subjectId")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	grades, err := h.gradeService.MySubjectGrade(requester, subjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, grades)
}
