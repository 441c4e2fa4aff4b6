package order

import (
	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrBlankCustomerName 顾客姓名为空(去除空白后)
	ErrBlankCustomerName = apperrors.New(apperrors.ErrCodeInvalidParams, "请输入您的姓名")

	// ErrOrderIDConflict 订单号已存在
	// 说明:订单号不保证全局唯一,冲突时由存储层主键约束拒绝,不会覆盖旧订单
	ErrOrderIDConflict = apperrors.New(apperrors.ErrCodeOrderIDConflict, "订单号冲突,请重新下单")

	// ErrCreateOrderFailed 下单失败(存储层异常时对顾客展示的通用提示)
	ErrCreateOrderFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "下单失败,请稍后重试")

	// ErrLoadOrdersFailed 读取订单列表失败
	ErrLoadOrdersFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "加载订单失败,请稍后重试")

	// ErrDeleteOrderFailed 删除订单失败
	ErrDeleteOrderFailed = apperrors.New(apperrors.ErrCodeDatabaseError, "删除订单失败,请稍后重试")
)
