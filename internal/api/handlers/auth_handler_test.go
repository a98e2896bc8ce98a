package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"cloudmzansi/server/internal/api/handlers"
	"cloudmzansi/server/internal/auth"
	"cloudmzansi/server/internal/config"
	"cloudmzansi/server/internal/models"
	"cloudmzansi/server/internal/services"
)

func setupAuthRouter(users *MockUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{JwtSecret: "test-secret", JwtTTL: time.Hour}
	h := handlers.NewAuthHandler(cfg, users)
	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	return r
}

func TestLogin(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)

	user := &models.UserProfile{Email: "thandi@example.co.za", Role: models.RoleAdmin}
	user.SetID("user-1")
	users.On("Authenticate", mock.Anything, "thandi@example.co.za", "s3cret").Return(user, nil)

	w := postJSON(r, "/api/auth/login", map[string]interface{}{
		"email":    "thandi@example.co.za",
		"password": "s3cret",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	claims, err := auth.ValidateJWT(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	users.AssertExpectations(t)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)

	users.On("Authenticate", mock.Anything, "thandi@example.co.za", "wrong").
		Return((*models.UserProfile)(nil), services.ErrInvalidCredentials)

	w := postJSON(r, "/api/auth/login", map[string]interface{}{
		"email":    "thandi@example.co.za",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogin_Validation(t *testing.T) {
	users := new(MockUserService)
	r := setupAuthRouter(users)

	for _, body := range []map[string]interface{}{
		{"password": "s3cret"},
		{"email": "not-an-email", "password": "s3cret"},
		{"email": "thandi@example.co.za"},
	} {
		w := postJSON(r, "/api/auth/login", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	users.AssertNotCalled(t, "Authenticate", mock.Anything, mock.Anything, mock.Anything)
}
