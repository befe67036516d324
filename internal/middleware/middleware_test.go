package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ZigaLarissa/EduAssist/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth map[string]string

func (f fakeAuth) Authenticate(_ context.Context, token string) (string, error) {
	if uid, ok := f[token]; ok {
		return uid, nil
	}
	return "", errors.New("bad token")
}

type fakeProfiles map[string]*models.User

func (f fakeProfiles) Me(_ context.Context, userID string) (*models.User, error) {
	if u, ok := f[userID]; ok {
		return u, nil
	}
	return nil, errors.New("not found")
}

func newRouter() *gin.Engine {
	log := logrus.New()
	log.SetOutput(io.Discard)

	profiles := fakeProfiles{
		"t1": {UserID: "t1", Role: models.RoleTeacher},
		"p1": {UserID: "p1", Role: models.RoleParent},
	}

	r := gin.New()
	r.Use(RequestLogger(log), Metrics(), CORS([]string{"https://app.example.com"}))
	api := r.Group("/api", AuthMiddleware(fakeAuth{"good": "t1", "parent": "p1"}))
	api.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("userID"))
	})
	api.POST("/teachers-only", RequireRole(profiles, models.RoleTeacher), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic good", http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"valid token", "Bearer good", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "t1", w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"error"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := newRouter()

	for token, status := range map[string]int{"good": http.StatusCreated, "parent": http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodPost, "/api/teachers-only", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, status, w.Code, token)
	}
}

func TestCORS(t *testing.T) {
	r := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
