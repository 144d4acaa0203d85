package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Abdalla343/kushof/internal/access"
	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/services"
)

// AuthMiddleware создает middleware для авторизации
func AuthMiddleware(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Получаем токен из заголовка Authorization
		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				token = parts[1]
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized, no token"})
			c.Abort()
			return
		}

		// Валидируем токен
		user, err := authService.ValidateToken(token)
		if err != nil {
			respondError(c, err)
			c.Abort()
			return
		}

		// Сохраняем данные пользователя в контексте (строгие типы)
		c.Set("user", user)
		c.Set("user_id", user.ID)     // uuid.UUID
		c.Set("user_role", user.Role) // models.UserRole

		c.Next()
	}
}

// RequireRoles разрешает доступ только указанным ролям
func RequireRoles(allowed ...models.UserRole) gin.HandlerFunc {
	allowedSet := make(map[models.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		role, ok := roleVal.(models.UserRole)
		if !exists || !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": access.ReasonAccessDenied})
			c.Abort()
			return
		}
		if _, found := allowedSet[role]; !found {
			c.JSON(http.StatusForbidden, gin.H{"error": access.ReasonAccessDenied})
			c.Abort()
			return
		}
		c.Next()
	}
}

// TeacherOnlyMiddleware создает middleware только для преподавателей
func TeacherOnlyMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleTeacher)
}

// StudentOnlyMiddleware создает middleware только для учеников
func StudentOnlyMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleStudent)
}

// AdminOnlyMiddleware создает middleware только для администраторов
func AdminOnlyMiddleware() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// CORSMiddleware создает middleware для CORS
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// currentUser достает аутентифицированного пользователя из контекста
func currentUser(c *gin.Context) (*models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return nil, false
	}
	user, ok := userVal.(*models.User)
	return user, ok
}

// requesterFrom собирает субъекта проверки доступа из контекста запроса
func requesterFrom(c *gin.Context) (access.Requester, bool) {
	user, ok := currentUser(c)
	if !ok {
		return access.Requester{}, false
	}
	return access.Requester{
		ID:      user.ID,
		Role:    user.Role,
		IsPrime: user.IsPrime,
	}, true
}

// parseIDParam разбирает uuid из параметра пути
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID format"})
		return uuid.Nil, false
	}
	return id, true
}
