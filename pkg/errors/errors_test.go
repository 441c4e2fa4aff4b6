package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40103] 密码错误", ErrInvalidPassword.Error())

	wrapped := Wrap(errors.New("connection refused"), "查询订单失败")
	assert.Equal(t, "[50000] 查询订单失败: connection refused", wrapped.Error())
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	notFound := New(ErrCodeOrderNotFound, "订单不存在")

	// 经过fmt.Errorf包装后依然能识别
	err := fmt.Errorf("delete: %w", New(ErrCodeOrderNotFound, "订单不存在"))
	assert.True(t, errors.Is(err, notFound))
	assert.False(t, errors.Is(err, ErrUnauthorized))
}

func TestGetAppError(t *testing.T) {
	// AppError原样返回
	assert.Same(t, ErrInvalidToken, GetAppError(ErrInvalidToken))

	// 普通错误包装为内部错误，保留原始错误
	raw := errors.New("boom")
	appErr := GetAppError(raw)
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.ErrorIs(t, appErr, raw)
	assert.True(t, IsAppError(appErr))
	assert.False(t, IsAppError(raw))
}

func TestWrapCode_KeepsCause(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: lemonade_orders.id")
	err := WrapCode(cause, ErrCodeOrderIDConflict, "订单号冲突,请重新下单")

	assert.Equal(t, ErrCodeOrderIDConflict, err.Code)
	assert.ErrorIs(t, err, cause)
	assert.True(t, errors.Is(err, New(ErrCodeOrderIDConflict, "订单号冲突,请重新下单")))
}
