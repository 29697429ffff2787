package handler_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobfolio/profile-intake/internal/handler"
	"github.com/jobfolio/profile-intake/internal/identity"
	"github.com/jobfolio/profile-intake/internal/logger"
	"github.com/jobfolio/profile-intake/internal/moderation"
	"github.com/jobfolio/profile-intake/internal/storage"
	"github.com/jobfolio/profile-intake/internal/telemetry"
)

const moderatorEmail = "mod@example.com"

type stubResolver struct {
	user *identity.User
	err  error
}

func (s *stubResolver) Lookup(_ context.Context, _ string) (*identity.User, error) {
	return s.user, s.err
}

func newAdminMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func newModerateRouter(t *testing.T, admin *sqlx.DB, guard *moderation.Guard) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	store := storage.New(nil, admin, false, log)
	h := handler.NewModerateHandler(store, guard, telemetry.New(), log)

	r := gin.New()
	r.GET("/api/moderate", h.List)
	r.POST("/api/moderate", h.Decide)
	return r
}

func moderatorGuard() *moderation.Guard {
	resolver := &stubResolver{user: &identity.User{ID: "mod-1", Email: moderatorEmail}}
	return moderation.NewGuard(resolver, []string{moderatorEmail}, logger.NewNop())
}

func getModerate(t *testing.T, r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/moderate", http.NoBody)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func postModerate(t *testing.T, r *gin.Engine, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/moderate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestModerateListWithoutAuthService(t *testing.T) {
	guard := moderation.NewGuard(nil, []string{moderatorEmail}, logger.NewNop())
	r := newModerateRouter(t, nil, guard)

	w := getModerate(t, r, "Bearer anything")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestModerateListWithoutBearerToken(t *testing.T) {
	r := newModerateRouter(t, nil, moderatorGuard())

	w := getModerate(t, r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerateListRejectsUnlistedEmail(t *testing.T) {
	resolver := &stubResolver{user: &identity.User{ID: "u-2", Email: "intruder@example.com"}}
	guard := moderation.NewGuard(resolver, []string{moderatorEmail}, logger.NewNop())
	r := newModerateRouter(t, nil, guard)

	w := getModerate(t, r, "Bearer stolen-token")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestModerateListFailedLookup(t *testing.T) {
	resolver := &stubResolver{err: errors.New("auth service down")}
	guard := moderation.NewGuard(resolver, []string{moderatorEmail}, logger.NewNop())
	r := newModerateRouter(t, nil, guard)

	w := getModerate(t, r, "Bearer expired-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestModerateListWithoutAdminDatabase(t *testing.T) {
	r := newModerateRouter(t, nil, moderatorGuard())

	w := getModerate(t, r, "Bearer good-token")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestModerateListReturnsQueue(t *testing.T) {
	admin, mock := newAdminMockDB(t)

	columns := []string{
		"id", "slug", "role_title", "industry", "seniority", "location", "work_mode",
		"salary_range", "education_path", "day_to_day", "tools_used", "best_parts",
		"hardest_parts", "recommendation_to_students", "years_experience",
		"submitter_type", "contact_email", "created_at", "review_notes",
	}
	rows := sqlmock.NewRows(columns).AddRow(
		uuid.NewString(), "welder-aa11bb", "Welder", "Manufacturing", "Mid",
		"Hamilton, ON", "onsite", nil, nil, "I weld structural steel all day.",
		"{TIG,MIG}", "The craft itself.", "The fumes and the heat.",
		"Practice on scrap first.", 8, "public", nil,
		"2026-02-13 07:40:11.123456+00", nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM job_profiles").WillReturnRows(rows)

	r := newModerateRouter(t, admin, moderatorGuard())
	w := getModerate(t, r, "Bearer good-token")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])

	pending, ok := body["pending"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), pending["total"])

	items, ok := pending["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "welder-aa11bb", item["slug"])
	assert.Equal(t, "2026-02-13T07:40:11.123456+00:00", item["createdAt"])
}

func TestModerateDecideRejectsNonJSON(t *testing.T) {
	r := newModerateRouter(t, nil, moderatorGuard())

	req := httptest.NewRequest(http.MethodPost, "/api/moderate", strings.NewReader("id=abc"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestModerateDecideValidatesPayload(t *testing.T) {
	r := newModerateRouter(t, nil, moderatorGuard())

	w := postModerate(t, r, map[string]any{
		"id":     "not-a-uuid",
		"status": "archived",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "id")
	assert.Contains(t, errs, "status")
}

func TestModerateDecideSubmissionNotFound(t *testing.T) {
	admin, mock := newAdminMockDB(t)
	mock.ExpectQuery("SELECT status FROM job_profiles").WillReturnError(sql.ErrNoRows)

	r := newModerateRouter(t, admin, moderatorGuard())
	w := postModerate(t, r, map[string]any{
		"id":     uuid.NewString(),
		"status": "approved",
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestModerateDecideRefusesAlreadyModerated(t *testing.T) {
	admin, mock := newAdminMockDB(t)
	mock.ExpectQuery("SELECT status FROM job_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("rejected"))

	r := newModerateRouter(t, admin, moderatorGuard())
	w := postModerate(t, r, map[string]any{
		"id":     uuid.NewString(),
		"status": "approved",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["ok"])
	assert.Equal(t, "Submission has already been moderated.", body["message"])
}

func TestModerateDecideApproves(t *testing.T) {
	admin, mock := newAdminMockDB(t)
	id := uuid.NewString()

	mock.ExpectQuery("SELECT status FROM job_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending"))
	mock.ExpectQuery("UPDATE job_profiles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id, "approved"))
	mock.ExpectExec("INSERT INTO moderation_events").
		WillReturnResult(sqlmock.NewResult(1, 1))

	r := newModerateRouter(t, admin, moderatorGuard())
	w := postModerate(t, r, map[string]any{
		"id":          id,
		"status":      "approved",
		"reviewNotes": "Looks genuine.",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["ok"])

	result, ok := body["result"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id, result["id"])
	assert.Equal(t, "approved", result["status"])
	assert.Equal(t, true, result["auditLogged"])
	require.NoError(t, mock.ExpectationsWereMet())
}
