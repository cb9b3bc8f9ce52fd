package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrimarket/agrimarket-api/internal/domain/entity"
	"github.com/agrimarket/agrimarket-api/internal/infrastructure/repository"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupIdempotencyRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.IdempotencyKey{}))

	router := gin.New()
	router.Use(Idempotency(IdempotencyConfig{Repo: repository.NewIdempotencyRepository(db)}))

	calls := 0
	router.POST("/orders", func(c *gin.Context) {
		calls++
		c.JSON(201, gin.H{"call": calls})
	})
	router.POST("/failing", func(c *gin.Context) {
		c.JSON(500, gin.H{"error": "boom"})
	})

	return router
}

func TestIdempotencyReplaysCachedResponse(t *testing.T) {
	router := setupIdempotencyRouter(t)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/orders", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Empty(t, first.Header().Get("X-Idempotency-Replayed"))

	second := do()
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	// The handler did not run a second time
	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestIdempotencyKeyReuseOnDifferentEndpoint(t *testing.T) {
	router := setupIdempotencyRouter(t)

	req := httptest.NewRequest("POST", "/orders", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "key-2")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("POST", "/failing", strings.NewReader("{}"))
	req.Header.Set("Idempotency-Key", "key-2")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "different request")
}

func TestIdempotencyDoesNotCacheFailures(t *testing.T) {
	router := setupIdempotencyRouter(t)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/failing", strings.NewReader("{}"))
		req.Header.Set("Idempotency-Key", "key-3")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	first := do()
	assert.Equal(t, http.StatusInternalServerError, first.Code)

	// The failure was not cached, so a retry reaches the handler again
	second := do()
	assert.Equal(t, http.StatusInternalServerError, second.Code)
	assert.Empty(t, second.Header().Get("X-Idempotency-Replayed"))
}

func TestIdempotencyWithoutKeyIsPassthrough(t *testing.T) {
	router := setupIdempotencyRouter(t)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/orders", strings.NewReader("{}"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("X-Idempotency-Replayed"))
	}
}
