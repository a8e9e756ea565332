package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	domainerrors "lendhub.backend/internal/domain/errors"
)

func TestError_AppErrorStatusAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, domainerrors.NotFound("loan request not found"))

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "ERR_NOT_FOUND")
	require.Contains(t, w.Body.String(), "loan request not found")
}

func TestError_UnknownErrorMapsToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, errors.New("driver: bad connection"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "ERR_INTERNAL")
	// Internal details never leak to the client.
	require.NotContains(t, w.Body.String(), "driver")
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, http.StatusCreated, gin.H{"ok": true})

	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, w.Body.String(), `"ok":true`)
}
