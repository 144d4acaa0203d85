package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abdalla343/kushof/internal/apperrors"
)

// respondError переводит ошибку сервиса в HTTP-ответ.
// Conflict намеренно отдается как 400, детали внутренних ошибок
// остаются в логе и не доходят до клиента.
func respondError(c *gin.Context, err error) {
	var status int
	message := err.Error()

	switch apperrors.KindOf(err) {
	case apperrors.KindValidation, apperrors.KindConflict:
		status = http.StatusBadRequest
	case apperrors.KindUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.KindForbidden:
		status = http.StatusForbidden
	case apperrors.KindNotFound:
		status = http.StatusNotFound
	default:
		status = http.StatusInternalServerError
		log.Printf("internal error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "Server error"
	}

	c.JSON(status, gin.H{"error": message})
}
