package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newRequestIDRouter(seen *string) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		*seen = c.GetString(RequestIDKey)
		ctxVal, _ := c.Request.Context().Value("request_id").(string)
		c.JSON(http.StatusOK, gin.H{"contextRequestId": ctxVal})
	})
	return r
}

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(seen)
	require.NoError(t, err, "generated request ID is a UUID")
	require.Contains(t, w.Body.String(), seen, "ID mirrored into the request context")
}

func TestRequestIDMiddleware_HonorsIncomingHeader(t *testing.T) {
	var seen string
	r := newRequestIDRouter(&seen)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "client-supplied-id")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "client-supplied-id", seen)
}
