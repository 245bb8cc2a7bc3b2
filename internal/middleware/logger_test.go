package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_RedactsSensitiveFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.POST("/x", func(c *gin.Context) {
		c.JSON(422, gin.H{"error": "validation_failed"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", strings.NewReader(`{"reason":"spam","api_key":"abc"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, 422, w.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zap.WarnLevel, entry.Level)

	ctx := entry.ContextMap()
	require.Equal(t, int64(422), ctx["status"])
	require.Contains(t, ctx["body"], `"api_key":"********"`)
	require.Contains(t, ctx["body"], `"reason":"spam"`)
	require.Contains(t, ctx["response"], "validation_failed")
}

func TestLogger_SkipsHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/health", func(c *gin.Context) { c.Status(200) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))
	require.Equal(t, 0, logs.Len())
}
