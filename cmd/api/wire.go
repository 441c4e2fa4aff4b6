//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 修改Provider后重新生成：
//
//	wire gen ./cmd/api
//
// 依赖链：
// *gin.Engine ← Handler ← UseCase ← order.Repository ← (*gorm.DB | *goredis.Client) ← *config.Config

package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	appadmin "github.com/kiwi/lemonade/internal/application/admin"
	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/infrastructure/messaging"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/redis"
	"github.com/kiwi/lemonade/internal/interface/http/handler"
	"github.com/kiwi/lemonade/internal/interface/http/middleware"
	"github.com/kiwi/lemonade/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖：Redis连接、订单存储、事件发布
var infrastructureSet = wire.NewSet(
	provideRedisClient,
	persistence.NewOrderRepository,
	messaging.NewEventPublisher,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	provideIDGenerator,
	apporder.NewCreateOrderUseCase,
	provideListOrdersUseCase,
	apporder.NewDeleteOrderUseCase,
	provideGate,
	appadmin.NewLoginUseCase,
	appadmin.NewLogoutUseCase,
)

// middlewareSet JWT管理器、Token黑名单、认证中间件
// 黑名单同时满足中间件的TokenChecker和登出用例的TokenRevoker
var middlewareSet = wire.NewSet(
	provideJWTManager,
	redis.NewTokenBlacklist,
	wire.Bind(new(middleware.TokenChecker), new(*redis.TokenBlacklist)),
	wire.Bind(new(appadmin.TokenRevoker), new(*redis.TokenBlacklist)),
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器和路由
var handlerSet = wire.NewSet(
	handler.NewOrderHandler,
	handler.NewAdminHandler,
	router.NewRouter,
)

// InitializeApp 初始化整个应用
// 配置和logger由main先行创建（启动日志、链路追踪都依赖它们），这里作为参数传入
// cleanup按创建的逆序关闭事件发布者、数据库、Redis
func InitializeApp(cfg *config.Config, log *slog.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		applicationSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}
