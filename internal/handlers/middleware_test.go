package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abdalla343/kushof/internal/models"
	"github.com/Abdalla343/kushof/internal/repository"
	"github.com/Abdalla343/kushof/internal/services"
	"github.com/Abdalla343/kushof/pkg/database"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *services.AuthService, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase("", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	authService := services.NewAuthService(repository.NewUserRepository(db.DB), "test_secret", time.Hour)

	router := gin.New()
	protected := router.Group("/protected", AuthMiddleware(authService))
	protected.GET("", func(c *gin.Context) {
		user, _ := currentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	protected.GET("/teacher", TeacherOnlyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	protected.GET("/admin", AdminOnlyMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router, authService, db
}

func registerAndToken(t *testing.T, authService *services.AuthService, email string, role models.UserRole) string {
	t.Helper()
	result, err := authService.Register("Test User", email, "password123", role)
	require.NoError(t, err)
	return result.Token
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddlewareNoToken(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	rec := doRequest(router, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, no token")
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	router, _, _ := newAuthTestRouter(t)

	rec := doRequest(router, "/protected", "garbage.token.value")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, token failed")
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router, authService, _ := newAuthTestRouter(t)
	token := registerAndToken(t, authService, "omar@test.com", models.RoleStudent)

	rec := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareDeletedUser(t *testing.T) {
	router, authService, db := newAuthTestRouter(t)
	token := registerAndToken(t, authService, "omar@test.com", models.RoleStudent)

	require.NoError(t, db.DB.Where("email = ?", "omar@test.com").Delete(&models.User{}).Error)

	rec := doRequest(router, "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authorized, user not found")
}

func TestTeacherOnlyMiddleware(t *testing.T) {
	router, authService, _ := newAuthTestRouter(t)
	teacherToken := registerAndToken(t, authService, "ahmed@test.com", models.RoleTeacher)
	studentToken := registerAndToken(t, authService, "omar@test.com", models.RoleStudent)

	rec := doRequest(router, "/protected/teacher", teacherToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, "/protected/teacher", studentToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied")
}

func TestAdminOnlyMiddleware(t *testing.T) {
	router, authService, _ := newAuthTestRouter(t)
	teacherToken := registerAndToken(t, authService, "ahmed@test.com", models.RoleTeacher)

	rec := doRequest(router, "/protected/admin", teacherToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
