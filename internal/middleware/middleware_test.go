package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.NoRoute(NoRoute())
	r.NoMethod(NoMethod())
	r.Use(mw...)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, "trace-123")
	w = serve(r, req)
	assert.Equal(t, "trace-123", w.Header().Get(HeaderXRequestID))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderXRequestID, strings.Repeat("x", 200))
	w = serve(r, req)
	assert.Len(t, w.Header().Get(HeaderXRequestID), 36)
}

func TestRecovery(t *testing.T) {
	r := newEngine(RequestID(), Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("nil map") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
	assert.Contains(t, w.Body.String(), `"message":"Internal server error"`)
}

func TestNoRouteAndNoMethod(t *testing.T) {
	r := newEngine()
	r.GET("/things", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/nothing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Route not found"}`, w.Body.String())

	w = serve(r, httptest.NewRequest(http.MethodDelete, "/things", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCORS(t *testing.T) {
	r := newEngine(CORS(DefaultCORSConfig([]string{"https://admin.meetocure.com"})))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://admin.meetocure.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.meetocure.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSizeLimit(t *testing.T) {
	r := newEngine(SizeLimit(16))
	r.POST("/", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)
	})

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`)))
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"far too long for the limit"}`)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Request body exceeds 16 bytes"}`, w.Body.String())

	// undeclared length is capped while reading
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"far too long for the limit"}`))
	req.ContentLength = -1
	w = serve(r, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(SecurityHeaders(DefaultSecurityConfig(false)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Empty(t, w.Header().Get("Strict-Transport-Security"))

	r = newEngine(SecurityHeaders(DefaultSecurityConfig(true)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, w.Header().Get("Strict-Transport-Security"))
}

func TestErrorHandler(t *testing.T) {
	r := newEngine(ErrorHandler())
	r.GET("/", func(c *gin.Context) { _ = c.Error(boomErr{}) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"Internal server error"`)
}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }
