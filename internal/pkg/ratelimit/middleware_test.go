package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RateLimitExceeded(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(0, time.Minute) // limit 0 -> always deny
	r := gin.New()
	r.Use(UserBasedMiddleware(lim))
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 429, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "rate_limited", body["error"])
	require.Equal(t, "60", w.Header().Get("Retry-After"))
	require.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestMiddleware_KeysByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	lim := New(1, time.Minute)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", c.GetHeader("X-User"))
		c.Next()
	})
	r.Use(UserBasedMiddleware(lim))
	r.POST("/", func(c *gin.Context) {
		c.Status(204)
	})

	send := func(user string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/", nil)
		req.Header.Set("X-User", user)
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, 204, send("u1"))
	require.Equal(t, 429, send("u1"))
	require.Equal(t, 204, send("u2"))
}

func TestRateLimiter_ResetAndCleanup(t *testing.T) {
	lim := New(1, 20*time.Millisecond)
	require.True(t, lim.Allow("k"))
	require.False(t, lim.Allow("k"))

	lim.Reset("k")
	require.True(t, lim.Allow("k"))

	time.Sleep(30 * time.Millisecond)
	lim.Cleanup()
	require.Equal(t, 1, lim.GetRemaining("k"))
}
