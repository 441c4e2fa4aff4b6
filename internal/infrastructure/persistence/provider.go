// Package persistence 按配置选择订单存储实现
package persistence

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/kiwi/lemonade/internal/domain/order"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/database"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/redis"
)

// NewOrderRepository 根据storage.driver创建订单仓储
//   - mysql | postgres | sqlite：GORM关系库（只有这种情况才会打开数据库连接）
//   - redis：键值存储，复用已有的Redis客户端
//
// 返回的cleanup用于关闭数据库连接（Wire会在退出时调用）
func NewOrderRepository(cfg *config.Config, client *goredis.Client) (order.Repository, func(), error) {
	if !cfg.Storage.IsRelational() {
		slog.Info("订单存储使用Redis键值模式", "key", cfg.Order.KVKey)
		return redis.NewOrderStore(client, cfg.Order.KVKey), func() {}, nil
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return database.NewOrderRepository(db), cleanup, nil
}
