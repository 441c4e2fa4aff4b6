// Package router 注册HTTP路由
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kiwi/lemonade/docs" // Swagger文档（swag init生成）
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/interface/http/handler"
	"github.com/kiwi/lemonade/internal/interface/http/middleware"
	"github.com/kiwi/lemonade/pkg/response"
)

// NewRouter 创建并配置Gin引擎
//
// 路由一览：
//
//	GET    /ping                      健康检查
//	GET    /metrics                   Prometheus指标
//	GET    /swagger/*any              API文档
//	POST   /api/v1/orders             顾客下单
//	POST   /api/v1/admin/login        后台登录
//	POST   /api/v1/admin/logout       后台登出（需要登录）
//	GET    /api/v1/admin/orders       订单列表+统计（需要登录）
//	DELETE /api/v1/admin/orders/:id   删除订单（需要登录）
func NewRouter(
	cfg *config.Config,
	log *slog.Logger,
	orderHandler *handler.OrderHandler,
	adminHandler *handler.AdminHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	// 设置运行模式
	switch cfg.Server.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()

	// 中间件顺序：Recovery → 请求日志 → 链路追踪 → 指标 → CORS
	r.Use(
		gin.Recovery(),
		middleware.Logger(log),
		middleware.Tracing(),
		middleware.Metrics(),
		middleware.CORS(cfg.Server.CORS),
	)

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档路由
	// 访问 http://localhost:8080/swagger/index.html 查看API文档
	// 生产环境建议禁用Swagger或添加访问控制
	if cfg.Server.Mode != "release" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// API路由组
	v1 := r.Group("/api/v1")
	{
		// 顾客下单（公开接口）
		v1.POST("/orders", orderHandler.CreateOrder)

		// 后台
		admin := v1.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)

			authorized := admin.Group("")
			authorized.Use(authMiddleware.RequireAdmin())
			{
				authorized.POST("/logout", adminHandler.Logout)
				authorized.GET("/orders", orderHandler.ListOrders)
				authorized.DELETE("/orders/:id", orderHandler.DeleteOrder)
			}
		}
	}

	return r
}
