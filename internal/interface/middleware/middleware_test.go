package middleware

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/quiz-history-api/internal/domain/entity"
	"github.com/oksasatya/quiz-history-api/pkg/helpers"
)

type stubParser map[string]*entity.Principal

func (s stubParser) ParseToken(token string) (*entity.Principal, error) {
	if p, ok := s[token]; ok {
		return p, nil
	}
	return nil, errors.New("invalid token")
}

func whoami(c *gin.Context) {
	if p := PrincipalFrom(c); p != nil {
		c.String(http.StatusOK, p.UserID)
		return
	}
	c.String(http.StatusOK, "anonymous")
}

func TestPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Principal(stubParser{"good": {UserID: "u-1"}, "cookie": {UserID: "u-2"}}))
	r.GET("/", whoami)

	tests := []struct {
		name  string
		setup func(req *http.Request)
		want  string
	}{
		{"no token", func(*http.Request) {}, "anonymous"},
		{"bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, "u-1"},
		{"lowercase scheme", func(req *http.Request) { req.Header.Set("Authorization", "bearer good") }, "u-1"},
		{"invalid bearer", func(req *http.Request) { req.Header.Set("Authorization", "Bearer bad") }, "anonymous"},
		{"cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: "cookie"})
		}, "u-2"},
		{"header wins over cookie", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer good")
			req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: "cookie"})
		}, "u-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, "never rejects")
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestRequestIDAndRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestIDMiddleware(), RealIP(), AccessLog(logger))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "203.0.113.7", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Contains(t, buf.String(), `"ip":"203.0.113.7"`)
	assert.Contains(t, buf.String(), `"status":200`)

	const incoming = "5f0c3a4e-8f7e-4c1e-9d61-1b2a3c4d5e6f"
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	req.Header.Set("CF-Connecting-IP", "198.51.100.2")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))
	assert.Equal(t, "198.51.100.2", w.Body.String())
}

func TestHTTPMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Handler())
	r.GET("/quiz-sets/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/quiz-sets/a", "/quiz-sets/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, float64(2), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/quiz-sets/:id", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.RequestDuration))
}
