package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/pkg/logger"
	"github.com/kiwi/lemonade/pkg/tracing"
)

// @title           柠檬水订单服务 API
// @version         1.0
// @description     顾客下单、后台查看统计和删除订单
// @host            localhost:8080
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 格式：Bearer {token}
func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	appLogger, closeLog, err := logger.New(logger.Config{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer closeLog()

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("服务异常退出", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, appLogger *slog.Logger) error {
	appLogger.Info("配置加载成功",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"storage", cfg.Storage.Driver,
		"redis", cfg.Redis.Addr(),
		"mq_enabled", cfg.MQ.Enabled,
	)

	// 3. 链路追踪（可选）
	if cfg.Tracing.Enabled {
		shutdownTracer, err := tracing.InitTracer(tracing.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := shutdownTracer(ctx); err != nil {
				appLogger.Warn("关闭链路追踪失败", "error", err)
			}
		}()
	}

	// 4. 依赖注入（wire_gen.go）
	engine, cleanup, err := InitializeApp(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 5. 启动HTTP服务器
	errCh := make(chan error, 1)
	go func() {
		appLogger.Info("服务启动成功", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 6. 优雅关闭
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("HTTP服务器启动失败: %w", err)
	case <-ctx.Done():
	}

	appLogger.Info("正在优雅关闭服务...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("服务器强制关闭: %w", err)
	}
	appLogger.Info("服务已关闭")
	return nil
}
