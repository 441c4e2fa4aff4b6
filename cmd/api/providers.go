package main

import (
	goredis "github.com/redis/go-redis/v9"

	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/domain/admin"
	"github.com/kiwi/lemonade/internal/domain/order"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/redis"
	"github.com/kiwi/lemonade/pkg/jwt"
)

// 自定义Provider：构造函数的参数需要从Config中提取时，Wire无法自动推导

// provideRedisClient 创建Redis连接并返回关闭函数
func provideRedisClient(cfg *config.Config) (*goredis.Client, func(), error) {
	client, err := redis.NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return client, func() { client.Close() }, nil
}

// provideIDGenerator 使用系统时钟和math/rand的订单号生成器
func provideIDGenerator() *order.IDGenerator {
	return order.NewIDGenerator(nil, nil)
}

// provideListOrdersUseCase 从配置读取单价和统计时区
func provideListOrdersUseCase(cfg *config.Config, repo order.Repository) (*apporder.ListOrdersUseCase, error) {
	loc, err := cfg.Order.Location()
	if err != nil {
		return nil, err
	}
	return apporder.NewListOrdersUseCase(repo, cfg.Order.UnitPriceCents, loc), nil
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AdminTokenExpire)
}

func provideGate(cfg *config.Config) admin.Gate {
	return admin.NewGate(cfg.Admin.Password)
}
