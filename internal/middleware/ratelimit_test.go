package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(l *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(l.Middleware())
	router.GET("/api/rss", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doFrom(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/rss", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	l := NewRateLimiter(0.001, 2, time.Minute)
	router := newLimitedRouter(l)

	assert.Equal(t, http.StatusOK, doFrom(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, doFrom(router, "10.0.0.1:1234").Code)

	w := doFrom(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"message":"Too many requests"}`, w.Body.String())
}

func TestRateLimiter_PerClientBuckets(t *testing.T) {
	l := NewRateLimiter(0.001, 1, time.Minute)
	router := newLimitedRouter(l)

	require.Equal(t, http.StatusOK, doFrom(router, "10.0.0.1:1234").Code)
	require.Equal(t, http.StatusTooManyRequests, doFrom(router, "10.0.0.1:5678").Code)

	assert.Equal(t, http.StatusOK, doFrom(router, "10.0.0.2:1234").Code)
}

func TestRateLimiter_Sweep(t *testing.T) {
	l := NewRateLimiter(1, 1, time.Minute)
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return current }

	l.allow("10.0.0.1")
	current = current.Add(30 * time.Second)
	l.allow("10.0.0.2")

	current = current.Add(45 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.clients, 1)
	assert.Contains(t, l.clients, "10.0.0.2")
}

func TestRateLimiter_RunStopsWithContext(t *testing.T) {
	l := NewRateLimiter(1, 1, time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		l.Run(ctx, time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
