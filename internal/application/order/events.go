package order

import (
	"context"
	"time"
)

// 订单事件路由键(RabbitMQ Topic Exchange)
const (
	RoutingKeyOrderCreated = "order.created"
	RoutingKeyOrderDeleted = "order.deleted"
)

// EventPublisher 订单事件发布接口
// 说明:发布失败只记录日志,不影响下单/删单结果
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, event interface{}) error
}

// OrderCreatedEvent 顾客下单成功
type OrderCreatedEvent struct {
	OrderID      string    `json:"order_id"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderDeletedEvent 后台删除订单
type OrderDeletedEvent struct {
	OrderID   string    `json:"order_id"`
	DeletedAt time.Time `json:"deleted_at"`
}

// NoopPublisher 未启用消息队列时使用的空实现
type NoopPublisher struct{}

// Publish 什么都不做
func (NoopPublisher) Publish(context.Context, string, interface{}) error {
	return nil
}
