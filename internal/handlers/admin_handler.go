package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdalla343/kushof/internal/services"
)

// AdminHandler представляет обработчик администрирования
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler создает новый обработчик администрирования
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetUsers возвращает всех учеников и преподавателей
func (h *AdminHandler) GetUsers(c *gin.Context) {
	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	users, err := h.adminService.ListUsers(requester)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// ApproveTeacher подтверждает аккаунт преподавателя
func (h *AdminHandler) ApproveTeacher(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	user, err := h.adminService.ApproveTeacher(requester, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Teacher approved successfully",
		"user":    user,
	})
}

// DeleteUser удаляет пользователя
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	requester, ok := requesterFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	if err := h.adminService.DeleteUser(requester, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
