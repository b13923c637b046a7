package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(RequestLogging(logger))
	return router
}

// Every request produces exactly one completion log carrying method,
// path, status, duration and the request id, at a level matching the
// status class.
func TestProperty_RequestLogging(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("all requests are logged with required fields", prop.ForAll(
		func(method string, path string, status int) bool {
			core, logs := observer.New(zapcore.InfoLevel)
			logger := zap.New(core)

			router := newTestRouter(logger)
			router.Handle(method, path, func(c *gin.Context) {
				c.Status(status)
			})

			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			entries := logs.All()
			if len(entries) != 1 {
				t.Logf("expected one log entry, got %d", len(entries))
				return false
			}

			entry := entries[0]
			switch {
			case status >= 500:
				if entry.Level != zapcore.ErrorLevel {
					t.Logf("server errors should log at error level, got %s", entry.Level)
					return false
				}
			case status >= 400:
				if entry.Level != zapcore.WarnLevel {
					t.Logf("client errors should log at warn level, got %s", entry.Level)
					return false
				}
			default:
				if entry.Level != zapcore.InfoLevel {
					t.Logf("successes should log at info level, got %s", entry.Level)
					return false
				}
			}

			fields := entry.ContextMap()
			if fields["method"] != method {
				t.Logf("method mismatch: expected %s, got %v", method, fields["method"])
				return false
			}
			if fields["path"] != path {
				t.Logf("path mismatch: expected %s, got %v", path, fields["path"])
				return false
			}
			if fields["status"] != int64(status) {
				t.Logf("status mismatch: expected %d, got %v", status, fields["status"])
				return false
			}
			if _, ok := fields["duration"]; !ok {
				t.Logf("duration field missing")
				return false
			}
			if id, ok := fields["request_id"]; !ok || id == "" {
				t.Logf("request_id field missing or empty")
				return false
			}

			return true
		},
		gen.OneConstOf("GET", "POST", "PUT", "DELETE"),
		gen.OneConstOf("/api/v1/users", "/api/v1/appointments", "/api/v1/vitals"),
		gen.OneConstOf(http.StatusOK, http.StatusCreated, http.StatusBadRequest,
			http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

// An inbound X-Request-ID is kept; absent one, a fresh id is minted and
// echoed back on the response.
func TestProperty_RequestIDPropagation(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("inbound request ids are preserved", prop.ForAll(
		func(requestID string) bool {
			router := newTestRouter(zap.NewNop())
			router.GET("/ping", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/ping", nil)
			if requestID != "" {
				req.Header.Set("X-Request-ID", requestID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			echoed := w.Header().Get("X-Request-ID")
			if echoed == "" {
				t.Logf("response is missing X-Request-ID")
				return false
			}
			if requestID != "" && echoed != requestID {
				t.Logf("inbound id %q was replaced with %q", requestID, echoed)
				return false
			}

			return true
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	logger := zap.New(core)

	router := newTestRouter(logger)
	router.GET("/boom", func(c *gin.Context) {
		panic("something broke")
	})

	req := httptest.NewRequest("GET", "/boom", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}

	var recovered *observer.LoggedEntry
	entries := logs.All()
	for i := range entries {
		if entries[i].Message == "panic recovered" {
			recovered = &entries[i]
			break
		}
	}
	if recovered == nil {
		t.Fatal("panic was not logged")
	}
	if _, ok := recovered.ContextMap()["stack_trace"]; !ok {
		t.Fatal("stack_trace field missing from panic log")
	}
}
