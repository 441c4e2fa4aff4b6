// Package messaging 把订单事件发布到RabbitMQ
package messaging

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/pkg/circuitbreaker"
	"github.com/kiwi/lemonade/pkg/metrics"
	"github.com/kiwi/lemonade/pkg/mq"
)

// ExchangeType 订单事件使用Topic Exchange，消费者可以按 order.* 订阅
const ExchangeType = "topic"

// publisher 底层发布接口（*mq.Publisher满足）
type publisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// 连续发布失败5次后熔断30秒，期间事件直接丢弃
// CLOSED状态不设统计窗口，只有成功发布才清零连续失败计数
const (
	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

// EventPublisher 带熔断和指标统计的事件发布者
type EventPublisher struct {
	publisher publisher
	breaker   *circuitbreaker.CircuitBreaker
}

func newEventPublisher(p publisher, now func() time.Time) *EventPublisher {
	return &EventPublisher{
		publisher: p,
		breaker: circuitbreaker.NewCircuitBreaker("rabbitmq", circuitbreaker.Config{
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(c circuitbreaker.Counts) bool {
				return c.ConsecutiveFailures >= breakerFailures
			},
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				slog.Warn("事件发布熔断器状态变化", "name", name, "from", from.String(), "to", to.String())
			},
			Now: now,
		}),
	}
}

// Publish 发布事件并记录发布结果（success | failure | rejected）
func (p *EventPublisher) Publish(ctx context.Context, routingKey string, event interface{}) error {
	err := p.breaker.Execute(func() error {
		return p.publisher.Publish(ctx, routingKey, event)
	})

	result := "success"
	switch {
	case errors.Is(err, circuitbreaker.ErrOpenState):
		result = "rejected"
	case err != nil:
		result = "failure"
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"routing_key": routingKey,
		"result":      result,
	})
	return err
}

// NewEventPublisher 根据mq配置创建事件发布者
//   - mq.enabled=false：空实现
//   - 连接失败：记录告警并退化为空实现，下单流程不依赖消息队列
func NewEventPublisher(cfg *config.Config) (apporder.EventPublisher, func()) {
	if !cfg.MQ.Enabled {
		return apporder.NoopPublisher{}, func() {}
	}

	p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, ExchangeType)
	if err != nil {
		slog.Warn("RabbitMQ不可用，订单事件不会发布", "error", err)
		return apporder.NoopPublisher{}, func() {}
	}

	return newEventPublisher(p, nil), func() { p.Close() }
}

// NewConsumer 创建订单事件消费者（lemonadectl events watch使用）
func NewConsumer(cfg *config.Config, routingKeys []string) (*mq.Consumer, error) {
	return mq.NewConsumer(cfg.MQ.URL, cfg.MQ.Exchange, ExchangeType, cfg.MQ.Queue, routingKeys)
}
