package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthRouter(jwtManager *utils.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	protected := router.Group("/protected")
	protected.Use(AuthMiddleware(jwtManager))
	protected.GET("", func(c *gin.Context) {
		c.JSON(200, gin.H{"email": c.GetString("user_email")})
	})

	admin := protected.Group("/admin")
	admin.Use(RequireRole(entity.RoleAdmin))
	admin.GET("", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	return router
}

func TestAuthMiddleware(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	router := setupAuthRouter(jwtManager)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), "jean@example.com", entity.RoleUser)
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	expired := utils.NewJWTManager("test-secret", -time.Minute, 24*time.Hour)
	router := setupAuthRouter(expired)

	token, err := expired.GenerateAccessToken(uuid.New(), "jean@example.com", entity.RoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtManager := utils.NewJWTManager("test-secret", time.Hour, 24*time.Hour)
	router := setupAuthRouter(jwtManager)

	userToken, err := jwtManager.GenerateAccessToken(uuid.New(), "jean@example.com", entity.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtManager.GenerateAccessToken(uuid.New(), "admin@example.com", entity.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("GET", "/protected/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
