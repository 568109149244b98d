package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"shopping-api/api/response"
	"shopping-api/config"
	"shopping-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middlewares...)
	engine.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, response.GetRequestID(c)) })
	engine.POST("/ok", func(c *gin.Context) { c.Status(http.StatusCreated) })
	engine.GET("/boom", func(c *gin.Context) { panic("boom") })
	return engine
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestIDMiddleware(t *testing.T) {
	engine := newEngine(RequestIDMiddleware())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc")
	w = serve(engine, req)
	assert.Equal(t, "abc", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc", w.Body.String())
}

func TestRecoveryMiddleware(t *testing.T) {
	engine := newEngine(RequestIDMiddleware(), RecoveryMiddleware())

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"errorCode":"INTERNAL_SERVER_ERROR"`)
	assert.NotContains(t, w.Body.String(), "boom")
}

func TestRequireJSON(t *testing.T) {
	engine := newEngine(RequireJSON())

	tests := []struct {
		name        string
		method      string
		contentType string
		want        int
	}{
		{"json", http.MethodPost, "application/json", http.StatusCreated},
		{"json with charset", http.MethodPost, "application/json; charset=utf-8", http.StatusCreated},
		{"plain text", http.MethodPost, "text/plain", http.StatusUnsupportedMediaType},
		{"missing", http.MethodPost, "", http.StatusUnsupportedMediaType},
		{"read ignores type", http.MethodGet, "text/plain", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ok", strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			assert.Equal(t, tt.want, serve(engine, req).Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	engine := newEngine(CORSMiddleware(&config.CORSConfig{
		AllowOrigins: []string{"http://shop.local"},
		AllowMethods: []string{"GET", "POST"},
		MaxAge:       60,
	}))

	req := httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "http://shop.local")
	w := serve(engine, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://shop.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "http://evil.local")
	w = serve(engine, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitMiddleware(t *testing.T) {
	engine := newEngine(RateLimitMiddleware(&config.RateLimitConfig{Enabled: true, Rate: 0.001, Burst: 1}))

	assert.Equal(t, http.StatusOK, serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil)).Code)

	w := serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"errorCode":"TOO_MANY_REQUESTS"`)

	disabled := newEngine(RateLimitMiddleware(&config.RateLimitConfig{Enabled: false}))
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, serve(disabled, httptest.NewRequest(http.MethodGet, "/ok", nil)).Code)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	engine := newEngine(MetricsMiddleware(m))

	serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(engine, httptest.NewRequest(http.MethodGet, "/ok", nil))
	serve(engine, httptest.NewRequest(http.MethodGet, "/missing/123", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "/ok", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
