package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	var inCtx string
	r.GET("/x", func(c *gin.Context) {
		v, _ := c.Get(requestIDKey)
		inCtx = asString(v)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))

	hdr := w.Header().Get(requestIDHeader)
	if hdr == "" {
		t.Fatalf("response must carry a generated request id")
	}
	if inCtx != hdr {
		t.Fatalf("context id %q != header id %q", inCtx, hdr)
	}
}

func TestRequestID_PropagatesIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest("GET", "/x", nil)
	req.Header.Set(requestIDHeader, "client-id-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(requestIDHeader); got != "client-id-1" {
		t.Fatalf("incoming id must be reused, got %q", got)
	}
}

func TestLogger_AttachesRequestScopedLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Logger())
	var hadLogger bool
	r.GET("/x", func(c *gin.Context) {
		_, hadLogger = c.Get("logger")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/x?q=1", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !hadLogger {
		t.Fatalf("request-scoped logger not attached")
	}
}

func TestRecovery_ConvertsPanicToJSON500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/boom", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.Len() == 0 {
		t.Fatalf("expected a JSON error body")
	}
}

func TestLoggerFrom_NeverNil(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if LoggerFrom(c) == nil {
		t.Fatalf("LoggerFrom must return a usable fallback")
	}
	c.Set("logger", "not-a-logger")
	if LoggerFrom(c) == nil {
		t.Fatalf("wrong-typed value must still fall back")
	}
}

func Test_truncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("short string must pass through, got %q", got)
	}
	if got := truncate("hello", 0); got != "hello" {
		t.Fatalf("max <= 0 disables truncation, got %q", got)
	}
	got := truncate("hello world", 5)
	if got != "hello…" {
		t.Fatalf("truncate = %q", got)
	}
}

func Test_asString(t *testing.T) {
	if asString("x") != "x" || asString(nil) != "" || asString(42) != "" {
		t.Fatalf("asString misbehaves")
	}
}
