package order

import (
	"context"
	"errors"
	"time"

	"github.com/kiwi/lemonade/internal/domain/order"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
	"github.com/kiwi/lemonade/pkg/logger"
	"github.com/kiwi/lemonade/pkg/metrics"
	"github.com/kiwi/lemonade/pkg/tracing"
)

const tracerName = "lemonade/order"

// CreateOrderUseCase 顾客下单用例
// 教学要点:
// 1. 姓名为空时直接返回,不访问存储
// 2. 订单号生成后只插入一次,失败不重新生成、不重试
// 3. 存储错误对顾客只展示通用提示,具体原因写日志
type CreateOrderUseCase struct {
	orderRepo order.Repository
	idGen     *order.IDGenerator
	publisher EventPublisher
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	idGen *order.IDGenerator,
	publisher EventPublisher,
) *CreateOrderUseCase {
	if idGen == nil {
		idGen = order.NewIDGenerator(nil, nil)
	}
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		idGen:     idGen,
		publisher: publisher,
	}
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	CustomerName string
}

// CreateOrderResponse 下单响应
type CreateOrderResponse struct {
	ID           string    `json:"id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Execute 执行下单
func (uc *CreateOrderUseCase) Execute(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	defer span.End()
	log := logger.FromContext(ctx)

	// 1. 校验姓名(去除空白后非空)
	name, err := order.NormalizeCustomerName(req.CustomerName)
	if err != nil {
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": "blank_name"})
		return nil, err
	}

	// 2. 生成订单号并插入
	start := time.Now()
	o := order.NewOrder(uc.idGen.Generate(), name)
	err = uc.orderRepo.Create(ctx, o)
	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())

	if err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, order.ErrOrderIDConflict) {
			metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": "id_conflict"})
			log.WarnContext(ctx, "订单号冲突", "order_id", o.ID)
			return nil, err
		}
		metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": "store_error"})
		log.ErrorContext(ctx, "下单失败", "order_id", o.ID, "error", err)
		return nil, apperrors.WrapCode(err, order.ErrCreateOrderFailed.Code, order.ErrCreateOrderFailed.Message)
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)
	log.InfoContext(ctx, "订单已创建", "order_id", o.ID, "customer_name", o.CustomerName)

	// 3. 发布事件(失败不影响下单结果)
	event := OrderCreatedEvent{OrderID: o.ID, CustomerName: o.CustomerName, CreatedAt: o.CreatedAt}
	if err := uc.publisher.Publish(ctx, RoutingKeyOrderCreated, event); err != nil {
		log.WarnContext(ctx, "发布下单事件失败", "order_id", o.ID, "error", err)
	}

	return &CreateOrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		CreatedAt:    o.CreatedAt,
	}, nil
}
