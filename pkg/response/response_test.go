package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestSuccess(t *testing.T) {
	status, body := serve(t, func(c *gin.Context) { Success(c, gin.H{"id": "ABC123"}) })

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "success", body["message"])
	assert.Equal(t, map[string]interface{}{"id": "ABC123"}, body["data"])
}

func TestError_HidesInternalCause(t *testing.T) {
	err := apperrors.WrapCode(errors.New("dial tcp 10.0.0.1:6379: i/o timeout"), apperrors.ErrCodeRedisError, "缓存服务错误")
	status, body := serve(t, func(c *gin.Context) { Error(c, err) })

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(apperrors.ErrCodeRedisError), body["code"])
	assert.Equal(t, "缓存服务错误", body["message"])
	assert.NotContains(t, body, "data")
}

func TestError_PlainError(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) { Error(c, errors.New("boom")) })
	assert.Equal(t, float64(apperrors.ErrCodeInternal), body["code"])
}

func TestErrorWithCode(t *testing.T) {
	_, body := serve(t, func(c *gin.Context) { ErrorWithCode(c, apperrors.ErrCodeInvalidToken, "Token格式错误") })
	assert.Equal(t, float64(apperrors.ErrCodeInvalidToken), body["code"])
	assert.Equal(t, "Token格式错误", body["message"])
}
