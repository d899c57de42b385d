package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newEnvelopeTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ok", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"pong": true})
	})
	r.GET("/fail", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrNotFound)
	})
	return r
}

func TestRequestIDHonorsValidUUID(t *testing.T) {
	r := newEnvelopeTestRouter(t)
	inbound := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Request-ID", inbound)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, inbound, w.Header().Get("X-Request-ID"))
	require.Contains(t, w.Body.String(), inbound)
}

func TestRequestIDReplacesGarbage(t *testing.T) {
	r := newEnvelopeTestRouter(t)

	for _, inbound := range []string{"", "zap", "not-a-uuid-at-all"} {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		if inbound != "" {
			req.Header.Set("X-Request-ID", inbound)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		got := w.Header().Get("X-Request-ID")
		_, err := uuid.Parse(got)
		require.NoError(t, err, "header must be a minted UUID")
		require.NotEqual(t, inbound, got)
	}
}

func TestFailEnvelopeShape(t *testing.T) {
	r := newEnvelopeTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/fail", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), `"data":null`)
	require.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
	require.Contains(t, w.Body.String(), `"request_id"`)
}
