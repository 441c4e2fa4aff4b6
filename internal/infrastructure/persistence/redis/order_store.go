package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kiwi/lemonade/internal/domain/order"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// DefaultOrdersKey 保存订单数组的默认key
const DefaultOrdersKey = "lemonadeOrders"

// timestampLayout ISO-8601 UTC毫秒格式，如 2024-06-01T09:00:00.123Z
const timestampLayout = "2006-01-02T15:04:05.000Z"

// storedOrder 键值存储中的订单记录
// 教学要点:字段名沿用最早的浏览器本地存储格式(id/name/timestamp),两种存储可以互相导入
type storedOrder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timestamp string `json:"timestamp"`
}

// OrderStore 订单键值存储(Redis)
// 设计说明:
// 1. 全部订单保存在一个key下的JSON数组里,新订单追加到末尾
// 2. 写操作是"读出-修改-写回",用WATCH事务保护:
//    并发写入导致事务失败时直接报错,不合并、不重试
// 3. 适合单店小流量场景,订单量大时应使用关系库
type OrderStore struct {
	client *redis.Client
	key    string
	now    func() time.Time
}

// NewOrderStore 创建订单键值存储,key为空时使用DefaultOrdersKey
func NewOrderStore(client *redis.Client, key string) *OrderStore {
	if key == "" {
		key = DefaultOrdersKey
	}
	return &OrderStore{client: client, key: key, now: time.Now}
}

// Create 追加订单
func (s *OrderStore) Create(ctx context.Context, o *order.Order) error {
	createdAt := s.now().UTC().Truncate(time.Millisecond)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		records, err := s.load(ctx, tx)
		if err != nil {
			return err
		}

		for _, r := range records {
			if r.ID == o.ID {
				return order.ErrOrderIDConflict
			}
		}

		records = append(records, storedOrder{
			ID:        o.ID,
			Name:      o.CustomerName,
			Timestamp: createdAt.Format(timestampLayout),
		})
		return s.save(ctx, tx, records)
	}, s.key)
	if err != nil {
		return s.wrap(err, "创建订单失败")
	}

	o.CreatedAt = createdAt
	return nil
}

// List 列出全部订单(按下单时间倒序)
func (s *OrderStore) List(ctx context.Context) ([]*order.Order, error) {
	records, err := s.load(ctx, s.client)
	if err != nil {
		return nil, s.wrap(err, "查询订单列表失败")
	}

	// 数组按追加顺序保存,倒着遍历再稳定排序,同一毫秒内后追加的排在前面
	orders := make([]*order.Order, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		createdAt, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return nil, apperrors.WrapCode(err, apperrors.ErrCodeRedisError, "订单时间格式错误")
		}
		orders = append(orders, &order.Order{
			ID:           r.ID,
			CustomerName: r.Name,
			CreatedAt:    createdAt,
		})
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

// Delete 按订单号删除
func (s *OrderStore) Delete(ctx context.Context, id string) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		records, err := s.load(ctx, tx)
		if err != nil {
			return err
		}

		kept := records[:0]
		for _, r := range records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		if len(kept) == len(records) {
			return order.ErrOrderNotFound
		}
		return s.save(ctx, tx, kept)
	}, s.key)
	if err != nil {
		return s.wrap(err, "删除订单失败")
	}
	return nil
}

// getter *redis.Client和WATCH中的*redis.Tx都满足
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// load 读取订单数组,key不存在视为空数组
func (s *OrderStore) load(ctx context.Context, c getter) ([]storedOrder, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var records []storedOrder
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// save 在MULTI/EXEC中写回整个数组
func (s *OrderStore) save(ctx context.Context, tx *redis.Tx, records []storedOrder) error {
	if records == nil {
		records = []storedOrder{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key, data, 0)
		return nil
	})
	return err
}

// wrap 领域错误原样返回,其余错误(包括redis.TxFailedErr)包装为存储错误
func (s *OrderStore) wrap(err error, message string) error {
	if errors.Is(err, order.ErrOrderIDConflict) || errors.Is(err, order.ErrOrderNotFound) {
		return err
	}
	return apperrors.WrapCode(err, apperrors.ErrCodeRedisError, message)
}
