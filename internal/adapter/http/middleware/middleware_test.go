package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, http.NoBody)
	for k, v := range header {
		for _, vv := range v {
			req.Header.Add(k, vv)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func echoRequestID(c *gin.Context) {
	c.String(http.StatusOK, c.GetString(RequestIDKey))
}

func TestRequestID(t *testing.T) {
	t.Run("generates new request ID when not provided", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/test", echoRequestID)

		w := serve(r, http.MethodGet, "/test", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Body.String())
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("uses provided request ID", func(t *testing.T) {
		r := gin.New()
		r.Use(RequestID())
		r.GET("/test", echoRequestID)

		w := serve(r, http.MethodGet, "/test", http.Header{RequestIDHeader: {"battle-req-7"}})

		assert.Equal(t, "battle-req-7", w.Body.String())
		assert.Equal(t, "battle-req-7", w.Header().Get(RequestIDHeader))
	})
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		level   zapcore.Level
		message string
	}{
		{name: "success is info", status: http.StatusOK, level: zapcore.InfoLevel, message: "request served"},
		{name: "4xx is warning", status: http.StatusConflict, level: zapcore.WarnLevel, message: "request rejected"},
		{name: "5xx is error", status: http.StatusInternalServerError, level: zapcore.ErrorLevel, message: "request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			r := gin.New()
			r.Use(RequestID())
			r.Use(Logger(zap.New(core)))
			r.POST("/api/v1/battles/:id/finalize", func(c *gin.Context) {
				c.Status(tt.status)
			})

			w := serve(r, http.MethodPost, "/api/v1/battles/9/finalize?dry=1", nil)

			assert.Equal(t, tt.status, w.Code)
			entries := logs.All()
			if assert.Len(t, entries, 1) {
				assert.Equal(t, tt.level, entries[0].Level)
				assert.Equal(t, tt.message, entries[0].Message)
				fields := entries[0].ContextMap()
				assert.Equal(t, "/api/v1/battles/9/finalize?dry=1", fields["path"])
				assert.Equal(t, int64(tt.status), fields["status"])
				assert.NotEmpty(t, fields["request_id"])
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		core, logs := observer.New(zapcore.ErrorLevel)
		r := gin.New()
		r.Use(RequestID())
		r.Use(Recovery(zap.New(core)))
		r.GET("/test", func(c *gin.Context) {
			panic("scoring exploded")
		})

		w := serve(r, http.MethodGet, "/test", nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
		assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	})

	t.Run("passes through when no panic", func(t *testing.T) {
		r := gin.New()
		r.Use(Recovery(zap.NewNop()))
		r.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := serve(r, http.MethodGet, "/test", nil)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("sets CORS headers", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/test", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
	})

	t.Run("handles OPTIONS preflight", func(t *testing.T) {
		w := serve(r, http.MethodOptions, "/test", nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
