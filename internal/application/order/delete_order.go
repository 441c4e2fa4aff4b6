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

// DeleteOrderUseCase 后台删除订单用例
// 删除是硬删除,没有确认步骤,也没有撤销
type DeleteOrderUseCase struct {
	orderRepo order.Repository
	publisher EventPublisher
}

// NewDeleteOrderUseCase 创建删除订单用例
func NewDeleteOrderUseCase(orderRepo order.Repository, publisher EventPublisher) *DeleteOrderUseCase {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &DeleteOrderUseCase{orderRepo: orderRepo, publisher: publisher}
}

// DeleteOrderResponse 删除响应
// 返回被删除的订单号,调用方据此从本地列表移除同一行,不需要重新拉取
type DeleteOrderResponse struct {
	ID string `json:"id"`
}

// Execute 按订单号删除
func (uc *DeleteOrderUseCase) Execute(ctx context.Context, id string) (*DeleteOrderResponse, error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteOrder")
	defer span.End()
	log := logger.FromContext(ctx)

	if err := uc.orderRepo.Delete(ctx, id); err != nil {
		tracing.RecordError(span, err)
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, err
		}
		log.ErrorContext(ctx, "删除订单失败", "order_id", id, "error", err)
		return nil, apperrors.WrapCode(err, order.ErrDeleteOrderFailed.Code, order.ErrDeleteOrderFailed.Message)
	}

	metrics.IncCounter(metrics.OrdersDeletedTotal)
	log.InfoContext(ctx, "订单已删除", "order_id", id)

	event := OrderDeletedEvent{OrderID: id, DeletedAt: time.Now()}
	if err := uc.publisher.Publish(ctx, RoutingKeyOrderDeleted, event); err != nil {
		log.WarnContext(ctx, "发布删单事件失败", "order_id", id, "error", err)
	}

	return &DeleteOrderResponse{ID: id}, nil
}
