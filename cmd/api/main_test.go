package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/user-service/internal/config"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := newRouter(&config.Config{
		SecretKey:          "test_secret",
		Port:               "0",
		GinMode:            gin.TestMode,
		CORSAllowedOrigins: "http://localhost:5173",
	})
	require.NoError(t, err)
	return router
}

func call(t *testing.T, router *gin.Engine, method, path, body, authorization string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	payload := map[string]string{}
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), "body=%s", rec.Body.String())
	}
	return rec.Code, payload
}

func TestAuthRoutesEndToEnd(t *testing.T) {
	router := newTestServer(t)

	status, payload := call(t, router, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "User registered successfully.", payload["message"])

	status, payload = call(t, router, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"p2"}`, "")
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "User already exists.", payload["message"])

	status, payload = call(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p1"}`, "")
	require.Equal(t, http.StatusOK, status)
	signed := payload["token"]
	require.NotEmpty(t, signed)

	status, payload = call(t, router, http.MethodGet, "/api/users/me", "", "Bearer "+signed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", payload["email"])

	status, _ = call(t, router, http.MethodPost, "/api/auth/login", `{"email":"a@x.com","password":"p2"}`, "")
	require.Equal(t, http.StatusUnauthorized, status)

	status, payload = call(t, router, http.MethodPost, "/api/auth/logout", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Logged out successfully.", payload["message"])

	// ログアウト後もトークンは有効なまま
	status, payload = call(t, router, http.MethodGet, "/api/users/me", "", "Bearer "+signed)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@x.com", payload["email"])
}

func TestRegisterRequiresFields(t *testing.T) {
	router := newTestServer(t)

	for _, body := range []string{`{"email":"a@x.com"}`, `{"password":"p1"}`, `{"email":"","password":"p1"}`, ""} {
		status, payload := call(t, router, http.MethodPost, "/api/auth/register", body, "")
		assert.Equal(t, http.StatusBadRequest, status, "body %q", body)
		assert.Equal(t, "Email and password are required.", payload["message"], "body %q", body)
	}
}

func TestLoginWithoutBody(t *testing.T) {
	router := newTestServer(t)
	status, payload := call(t, router, http.MethodPost, "/api/auth/login", "", "")
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid email or password.", payload["message"])
}

func TestMeRequiresAuthorization(t *testing.T) {
	router := newTestServer(t)

	status, payload := call(t, router, http.MethodGet, "/api/users/me", "", "")
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Authorization header is required.", payload["message"])

	status, payload = call(t, router, http.MethodGet, "/api/users/me", "", "Bearer not-a-token")
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token.", payload["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestServer(t)

	status, payload := call(t, router, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", payload["status"])

	_, _ = call(t, router, http.MethodPost, "/api/auth/register", `{"email":"a@x.com","password":"p1"}`, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `user_service_auth_operations_total{operation="register",outcome="success"} 1`)
	assert.Contains(t, body, "user_service_registered_users 1")
}
