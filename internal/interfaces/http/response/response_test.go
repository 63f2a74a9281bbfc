package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "wrld-names.backend/internal/domain/errors"
)

func serve(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestSuccess(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Success(c, http.StatusCreated, gin.H{"name": "arkdev"})
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"name":"arkdev"`)
}

func TestError_AppErrorCarriesItsStatus(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, domainerrors.BadRequest("bridge contract is not set"))
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "bridge contract is not set")
}

func TestError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domainerrors.ErrNotRegistered, http.StatusNotFound},
		{domainerrors.ErrNameTaken, http.StatusConflict},
		{domainerrors.ErrForbidden, http.StatusForbidden},
		{domainerrors.ErrNotApprovedRegistrar, http.StatusForbidden},
		{domainerrors.ErrNameTooShort, http.StatusBadRequest},
		{domainerrors.ErrRegistrationDisabled, http.StatusUnprocessableEntity},
		{domainerrors.ErrNoPass, http.StatusUnprocessableEntity},
		{domainerrors.ErrInsufficientAllowance, http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		w := serve(func(c *gin.Context) {
			Error(c, tc.err)
		})
		require.Equal(t, tc.status, w.Code, tc.err.Error())
		require.Contains(t, w.Body.String(), tc.err.Error())
	}
}

func TestError_UnknownErrorsAreMasked(t *testing.T) {
	w := serve(func(c *gin.Context) {
		Error(c, errors.New("pq: connection reset"))
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "internal server error")
	require.NotContains(t, w.Body.String(), "pq:")
}
