package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jobfolio/profile-intake/internal/handler"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/storage"
)

func getHealth(t *testing.T, store *storage.Store) *httptest.ResponseRecorder {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", handler.NewHealthHandler("1.2.3", store).HealthCheck)

	req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthReportsLocalFallbackStorage(t *testing.T) {
	store := storage.New(nil, nil, true, logger.NewNop())

	w := getHealth(t, store)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.Equal(t, "local-fallback", body["storage"])
	assert.Equal(t, false, body["moderation"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHealthReportsDatabaseStorage(t *testing.T) {
	db, _ := newAdminMockDB(t)
	admin, _ := newAdminMockDB(t)
	store := storage.New(db, admin, false, logger.NewNop())

	w := getHealth(t, store)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "postgres", body["storage"])
	assert.Equal(t, true, body["moderation"])
}
