package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/quiz-channels-api/internal/config"
	"github.com/yourusername/quiz-channels-api/internal/domain/entity"
	"github.com/yourusername/quiz-channels-api/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJWT(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.JWTConfig{Secret: "middleware-secret", ExpirationHrs: 1})
	require.NoError(t, err)
	return svc
}

func newAdminRouter(mw *AuthMiddleware) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", mw.RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":       c.GetUint(ContextAdminID),
			"username": c.GetString(ContextAdminUsername),
		})
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	jwtService := newJWT(t)
	token, _, err := jwtService.GenerateToken(&entity.User{ID: 4, Username: "root", IsAdmin: true})
	require.NoError(t, err)
	router := newAdminRouter(NewAuthMiddleware(jwtService, nil, true))

	tests := []struct {
		name       string
		header     string
		query      string
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic " + token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer garbage", wantStatus: http.StatusUnauthorized},
		{name: "bearer header", header: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "query token", query: "?token=" + token, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"id":4,"username":"root"}`, w.Body.String())
			}
		})
	}
}

// stubAdmins отвечает на проверку существования администратора
type stubAdmins struct {
	exists bool
	err    error
}

func (s stubAdmins) AdminExists(_ context.Context, _ uint) (bool, error) {
	return s.exists, s.err
}

func TestRequireAdmin_ChecksAdminStillExists(t *testing.T) {
	jwtService := newJWT(t)
	token, _, err := jwtService.GenerateToken(&entity.User{ID: 4, Username: "root", IsAdmin: true})
	require.NoError(t, err)

	tests := []struct {
		name       string
		admins     stubAdmins
		wantStatus int
	}{
		{name: "admin exists", admins: stubAdmins{exists: true}, wantStatus: http.StatusOK},
		{name: "admin deleted", admins: stubAdmins{exists: false}, wantStatus: http.StatusUnauthorized},
		{name: "lookup fails", admins: stubAdmins{err: errors.New("db down")}, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newAdminRouter(NewAuthMiddleware(jwtService, tt.admins, true))
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireAdmin_Disabled(t *testing.T) {
	router := newAdminRouter(NewAuthMiddleware(nil, nil, true))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	// Arrange
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	limit := LoginRateLimitConfig(config.RateLimitConfig{LoginMaxRequests: 2, LoginWindow: time.Minute})
	router := gin.New()
	router.POST("/admin/login", NewRateLimiter(client).Limit(limit), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(w, req)
		return w
	}

	// Act & Assert
	assert.Equal(t, http.StatusOK, send().Code)
	second := send()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get("X-RateLimit-Remaining"))

	blocked := send()
	assert.Equal(t, http.StatusTooManyRequests, blocked.Code)
	assert.NotEmpty(t, blocked.Header().Get("Retry-After"))

	// Окно истекло
	mr.FastForward(time.Minute + time.Second)
	assert.Equal(t, http.StatusOK, send().Code)
}

func TestRateLimiter_FailOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	router := gin.New()
	router.POST("/admin/login", NewRateLimiter(client).Limit(RateLimitConfig{MaxRequests: 1, Window: time.Minute, KeyPrefix: "rl"}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/login", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractUintParam(t *testing.T) {
	router := gin.New()
	router.DELETE("/items/:id", ExtractUintParam("id", "itemID"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.MustGet("itemID").(uint)})
	})

	for path, want := range map[string]int{
		"/items/12":  http.StatusOK,
		"/items/abc": http.StatusUnprocessableEntity,
		"/items/0":   http.StatusUnprocessableEntity,
		"/items/-3":  http.StatusUnprocessableEntity,
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
