package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudmzansi/server/internal/api/middleware"
	"cloudmzansi/server/internal/auth"
	"cloudmzansi/server/internal/models"
)

const testJwtSecret = "middleware-test-secret"

func setupAuthTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleware(testJwtSecret))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": middleware.UserID(c), "admin": middleware.IsAdmin(c)})
	})
	admin := protected.Group("/", middleware.AdminMiddleware())
	admin.GET("/admin", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return r
}

func doGet(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := setupAuthTestRouter()
	w := doGet(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BadFormat(t *testing.T) {
	r := setupAuthTestRouter()
	for _, header := range []string{"sometoken", "Basic abc123", "Bearer"} {
		w := doGet(r, "/me", header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, header)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := setupAuthTestRouter()
	w := doGet(r, "/me", "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := setupAuthTestRouter()
	token, err := auth.GenerateJWT("user-1", models.RoleClient, testJwtSecret, -time.Minute)
	require.NoError(t, err)
	w := doGet(r, "/me", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := setupAuthTestRouter()
	token, err := auth.GenerateJWT("user-1", models.RoleClient, testJwtSecret, time.Hour)
	require.NoError(t, err)

	w := doGet(r, "/me", "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":"user-1"`)
	assert.Contains(t, w.Body.String(), `"admin":false`)
}

func TestAdminMiddleware(t *testing.T) {
	r := setupAuthTestRouter()

	clientToken, err := auth.GenerateJWT("user-1", models.RoleClient, testJwtSecret, time.Hour)
	require.NoError(t, err)
	w := doGet(r, "/admin", "Bearer "+clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := auth.GenerateJWT("admin-1", models.RoleAdmin, testJwtSecret, time.Hour)
	require.NoError(t, err)
	w = doGet(r, "/admin", "Bearer "+adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
