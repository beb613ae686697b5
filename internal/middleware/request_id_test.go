package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newshub/internal/logger"
	"newshub/internal/middleware"
)

// captured is what the handler behind RequestID observed.
type captured struct {
	fromGin string
	fromCtx string
}

func requestIDRouter(seen *captured) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.GET("/api/articles", func(c *gin.Context) {
		seen.fromGin = middleware.GetRequestID(c)
		seen.fromCtx = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		wantKeep bool
	}{
		{name: "no header generates uuid"},
		{name: "client id is reused", header: "client-provided-id-12345", wantKeep: true},
		{name: "max length id is reused", header: strings.Repeat("a", 128), wantKeep: true},
		{name: "overlong id is replaced", header: strings.Repeat("a", 129)},
		{name: "id with spaces is replaced", header: "two words"},
		{name: "non ascii id is replaced", header: "bài-viết"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen captured
			router := requestIDRouter(&seen)

			req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
			if tt.header != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			got := w.Header().Get(middleware.RequestIDHeader)
			assert.Equal(t, got, seen.fromGin)
			assert.Equal(t, got, seen.fromCtx)

			if tt.wantKeep {
				assert.Equal(t, tt.header, got)
				return
			}
			_, err := uuid.Parse(got)
			assert.NoError(t, err, "generated id should be a uuid")
		})
	}
}

func TestRequestID_DistinctPerRequest(t *testing.T) {
	var seen captured
	router := requestIDRouter(&seen)

	ids := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/articles", nil))
		require.Equal(t, http.StatusOK, w.Code)
		ids[seen.fromGin] = struct{}{}
	}
	assert.Len(t, ids, 3)
}

func TestGetRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("empty outside middleware", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Empty(t, middleware.GetRequestID(c))
	})

	t.Run("ignores non string values", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(middleware.RequestIDKey, 12345)
		assert.Empty(t, middleware.GetRequestID(c))
	})
}
