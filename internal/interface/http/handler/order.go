package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/interface/http/dto"
	"github.com/kiwi/lemonade/internal/interface/http/middleware"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/logger"
	"github.com/kiwi/lemonade/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	createOrderUseCase *apporder.CreateOrderUseCase
	listOrdersUseCase  *apporder.ListOrdersUseCase
	deleteOrderUseCase *apporder.DeleteOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	createOrderUseCase *apporder.CreateOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
	deleteOrderUseCase *apporder.DeleteOrderUseCase,
) *OrderHandler {
	return &OrderHandler{
		createOrderUseCase: createOrderUseCase,
		listOrdersUseCase:  listOrdersUseCase,
		deleteOrderUseCase: deleteOrderUseCase,
	}
}

// CreateOrder 顾客下单
// @Summary      顾客下单
// @Description  提交姓名，返回6位取餐码（前3位字母数字+后3位时间戳数字）
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "顾客姓名"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      40900 {object} response.Response "请输入您的姓名"
// @Failure      40006 {object} response.Response "订单号冲突"
// @Failure      50001 {object} response.Response "下单失败,请稍后重试"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, "参数错误: "+err.Error())
		return
	}

	// 2. 调用应用层用例
	result, err := h.createOrderUseCase.Execute(c.Request.Context(), apporder.CreateOrderRequest{
		CustomerName: req.CustomerName,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// 3. 构建HTTP响应
	response.Success(c, dto.ToOrderResponse(result))
}

// ListOrders 后台订单列表
// @Summary      订单列表
// @Description  返回全部订单（按下单时间倒序）和统计：总数、今日订单、营业额
// @Tags         后台模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.ListOrdersResponse} "成功"
// @Failure      40100 {object} response.Response "请先登录"
// @Failure      50001 {object} response.Response "加载订单失败"
// @Router       /admin/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	result, err := h.listOrdersUseCase.Execute(adminContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToListOrdersResponse(result))
}

// DeleteOrder 后台删除订单
// @Summary      删除订单
// @Description  按订单号硬删除，返回被删除的订单号
// @Tags         后台模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "订单号"
// @Success      200 {object} response.Response{data=dto.DeleteOrderResponse} "删除成功"
// @Failure      40100 {object} response.Response "请先登录"
// @Failure      40403 {object} response.Response "订单不存在"
// @Failure      50001 {object} response.Response "删除订单失败"
// @Router       /admin/orders/{id} [delete]
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	result, err := h.deleteOrderUseCase.Execute(adminContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.DeleteOrderResponse{ID: result.ID})
}

// adminContext 请求级logger附加操作员标识，后台操作的用例日志都带operator
func adminContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	return logger.Inject(ctx, logger.FromContext(ctx).With("operator", middleware.GetAdminSubject(c)))
}
