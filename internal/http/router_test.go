package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibizabroker/520-project/internal/auth"
	"github.com/ibizabroker/520-project/internal/config"
	"github.com/ibizabroker/520-project/internal/http/middleware"
	"github.com/ibizabroker/520-project/internal/repo"
	"github.com/ibizabroker/520-project/internal/services"
)

const testSecret = "test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, pgxmock.PgxPoolIface, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock pool")
	t.Cleanup(mock.Close)

	cfg := &config.Config{
		Env:       "test",
		JWTSecret: testSecret,
		TokenTTL:  30 * time.Minute,
	}

	userRepo := repo.NewUserRepo(mock, time.Second)
	socialRepo := repo.NewSocialRepo(mock, time.Second)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	router := NewRouter(Dependencies{
		Config:        cfg,
		AuthService:   services.NewAuthService(userRepo, tokens, cfg),
		SocialService: services.NewSocialService(socialRepo),
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		RateLimiter:   middleware.NewRateLimiter(1000),
	})
	return router, mock, tokens
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func postJSON(router *gin.Engine, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func userRows(id, email, name string, role bool, passwordHash string) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "email", "name", "role", "password_hash", "created_at", "updated_at"}).
		AddRow(id, email, name, role, passwordHash, now, now)
}

func TestSignup(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), "a@x.com", "A", true, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	rec := postForm(router, "/signup", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
		"name":     {"A"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])
	assert.Equal(t, true, body["role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignup_DuplicateEmail(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	rec := postForm(router, "/signup", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
		"name":     {"A"},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_WrongPassword(t *testing.T) {
	router, mock, _ := newTestRouter(t)

	digest, err := auth.HashPassword("pw1")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("a@x.com").
		WillReturnRows(userRows("u1", "a@x.com", "A", true, digest))

	rec := postForm(router, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong"},
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "Incorrect email or password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin_Success(t *testing.T) {
	router, mock, tokens := newTestRouter(t)

	digest, err := auth.HashPassword("pw1")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("a@x.com").
		WillReturnRows(userRows("u1", "a@x.com", "A", true, digest))

	rec := postForm(router, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"pw1"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)

	// The issued token resolves back to the stored record's ID.
	subject, err := tokens.Subject(body["access_token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "u1", subject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogout_Idempotent(t *testing.T) {
	router, _, _ := newTestRouter(t)

	for i := 0; i < 2; i++ {
		rec := postForm(router, "/logout", url.Values{})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Logged out successfully")
	}
}

func TestProtected_MissingToken(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestProtected_ExpiredToken(t *testing.T) {
	router, _, tokens := newTestRouter(t)

	token, err := tokens.Issue("u1", -1*time.Second)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Could not validate credentials")
}

func TestMe(t *testing.T) {
	router, mock, tokens := newTestRouter(t)

	token, err := tokens.Issue("u1", 0)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("u1").
		WillReturnRows(userRows("u1", "a@x.com", "A", true, "digest"))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "u1", body["id"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.Equal(t, true, body["role"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddPost_Forbidden(t *testing.T) {
	router, mock, tokens := newTestRouter(t)

	token, err := tokens.Issue("u2", 0)
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("u2").
		WillReturnRows(userRows("u2", "b@x.com", "B", true, "digest"))
	mock.ExpectQuery(`SELECT id, user_id, name, content, visibility`).
		WithArgs("r1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "name", "content", "visibility", "created_at", "updated_at"}).
			AddRow("r1", "u1", "Pasta", "boil water", false, now, now))

	rec := postJSON(router, "/add_post", token, `{"recipe_id":"r1"}`)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Permission denied")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikePost_NotFound(t *testing.T) {
	router, mock, tokens := newTestRouter(t)

	token, err := tokens.Issue("u1", 0)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("u1").
		WillReturnRows(userRows("u1", "a@x.com", "A", true, "digest"))
	mock.ExpectQuery(`SELECT id, recipe_id, likes, created_at`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	rec := postJSON(router, "/like_post", token, `{"smid":"missing"}`)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Post not found on social media")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnlikePost_AtZero(t *testing.T) {
	router, mock, tokens := newTestRouter(t)

	token, err := tokens.Issue("u1", 0)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, email, name, role, password_hash`).
		WithArgs("u1").
		WillReturnRows(userRows("u1", "a@x.com", "A", true, "digest"))
	mock.ExpectQuery(`SELECT id, recipe_id, likes, created_at`).
		WithArgs("smid-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "recipe_id", "likes", "created_at"}).
			AddRow("smid-1", "r1", 0, time.Now()))

	rec := postJSON(router, "/unlike_post", token, `{"smid":"smid-1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cannot unlike, likes count is already zero")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
