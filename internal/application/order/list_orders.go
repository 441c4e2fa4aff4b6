package order

import (
	"context"
	"time"

	"github.com/kiwi/lemonade/internal/domain/order"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/logger"
	"github.com/kiwi/lemonade/pkg/tracing"
)

// ListOrdersUseCase 后台订单列表用例
// 统计数据在本地根据列出的订单计算,不额外查询存储
type ListOrdersUseCase struct {
	orderRepo      order.Repository
	unitPriceCents int64
	loc            *time.Location
	now            func() time.Time
}

// NewListOrdersUseCase 创建订单列表用例
// loc为"今日订单"的统计时区,为nil时使用time.Local
func NewListOrdersUseCase(orderRepo order.Repository, unitPriceCents int64, loc *time.Location) *ListOrdersUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ListOrdersUseCase{
		orderRepo:      orderRepo,
		unitPriceCents: unitPriceCents,
		loc:            loc,
		now:            time.Now,
	}
}

// OrderView 订单列表项
type OrderView struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// StatsView 统计卡片
type StatsView struct {
	Total        int    `json:"total"`         // 订单总数
	Today        int    `json:"today"`         // 今日订单数
	RevenueCents int64  `json:"revenue_cents"` // 营业额(分)
	Revenue      string `json:"revenue"`       // 营业额(元),如 "7.50"
}

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Orders []OrderView `json:"orders"`
	Stats  StatsView   `json:"stats"`
}

// Execute 列出全部订单(按下单时间倒序)并计算统计
func (uc *ListOrdersUseCase) Execute(ctx context.Context) (*ListOrdersResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListOrders")
	defer span.End()
	log := logger.FromContext(ctx)

	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		tracing.RecordError(span, err)
		log.ErrorContext(ctx, "加载订单失败", "error", err)
		return nil, apperrors.WrapCode(err, order.ErrLoadOrdersFailed.Code, order.ErrLoadOrdersFailed.Message)
	}

	stats := order.ComputeStats(orders, uc.now(), uc.loc, uc.unitPriceCents)

	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = OrderView{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			CreatedAt:    o.CreatedAt,
		}
	}

	log.InfoContext(ctx, "订单已加载", "count", len(orders))

	return &ListOrdersResponse{
		Orders: views,
		Stats: StatsView{
			Total:        stats.Total,
			Today:        stats.Today,
			RevenueCents: stats.RevenueCents,
			Revenue:      order.FormatAmount(stats.RevenueCents),
		},
	}, nil
}
