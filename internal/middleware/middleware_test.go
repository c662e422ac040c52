package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/campusly/college-management/internal/config"
	"github.com/campusly/college-management/internal/model"
	"github.com/campusly/college-management/internal/repository/memory"
	"github.com/campusly/college-management/internal/response"
	"github.com/campusly/college-management/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuth() *service.AuthService {
	return service.NewAuthService(&config.Config{JWTSecret: "mw-secret", JWTExpiry: time.Hour, BcryptCost: 4}, memory.NewUserStore())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) response.ErrCode {
	t.Helper()
	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRequireJWTAndRole(t *testing.T) {
	auth := newAuth()
	r := gin.New()
	r.GET("/admin", RequireJWT(auth), RequireRole(model.RoleAdmin), func(c *gin.Context) {
		p, _ := GetPrincipal(c)
		c.String(http.StatusOK, p.Username)
	})

	adminToken, _, err := auth.GenerateToken("root", []model.Role{model.RoleAdmin})
	require.NoError(t, err)
	userToken, _, err := auth.GenerateToken("viewer", []model.Role{model.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   response.ErrCode
	}{
		{"missing", "", http.StatusUnauthorized, response.ErrTokenRequired},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, response.ErrTokenRequired},
		{"garbage", "Bearer abc", http.StatusUnauthorized, response.ErrTokenInvalid},
		{"user role", "Bearer " + userToken, http.StatusForbidden, response.ErrForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, errorCode(t, w))
			} else {
				assert.Equal(t, "root", w.Body.String())
			}
		})
	}
}

func TestRequireRoleWithoutJWT(t *testing.T) {
	r := gin.New()
	r.GET("/", RequireRole(model.RoleUser), func(c *gin.Context) { c.Status(http.StatusOK) })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimiter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(ctx, 2, time.Minute)
	rl.now = func() time.Time { return now }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, rl.Allow("a"))

	r := gin.New()
	r.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestBrotliCompressesLargeJSON(t *testing.T) {
	departments := make([]model.Department, 0, 40)
	for i := 0; i < 40; i++ {
		departments = append(departments, model.Department{DepartmentID: "D", DepartmentName: "Computer Science", ShortCode: "CSE"})
	}
	text := strings.Repeat("department ", 500)

	r := gin.New()
	r.Use(Brotli())
	r.GET("/list", func(c *gin.Context) { c.JSON(http.StatusOK, departments) })
	r.POST("/list", func(c *gin.Context) { c.JSON(http.StatusCreated, departments) })
	r.GET("/text", func(c *gin.Context) { c.String(http.StatusOK, text) })
	r.GET("/small", func(c *gin.Context) { c.JSON(http.StatusOK, departments[:1]) })

	get := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Accept-Encoding", "gzip, br;q=1.0")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get(http.MethodGet, "/list")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "br", w.Header().Get("Content-Encoding"))
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	require.NoError(t, err)
	var decoded []model.Department
	require.NoError(t, json.Unmarshal(plain, &decoded))
	assert.Len(t, decoded, 40)

	w = get(http.MethodPost, "/list")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("Content-Encoding"))

	w = get(http.MethodGet, "/text")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, text, w.Body.String())

	w = get(http.MethodGet, "/small")
	assert.Empty(t, w.Header().Get("Content-Encoding"))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	assert.Len(t, decoded, 1)
}

func TestAcceptsBrotli(t *testing.T) {
	for header, want := range map[string]bool{
		"br":             true,
		"gzip, BR":       true,
		"br;q=0.5, gzip": true,
		"br;q=0":         false,
		"gzip, deflate":  false,
		"":               false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Encoding", header)
		assert.Equal(t, want, acceptsBrotli(req), header)
	}
}

func TestAccessLogWritesStatus(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(response.RequestIDMiddleware(), AccessLog(zerolog.New(&buf)), NoStore())
	r.GET("/cm/get/s/:studentId", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cm/get/s/42", nil))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "warn", line["level"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, "/cm/get/s/:studentId", line["route"])
	assert.Equal(t, w.Header().Get(response.HeaderRequestID), line["request_id"])
}
