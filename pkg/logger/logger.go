// Package logger 基于log/slog的结构化日志
//
// 设计说明：
// 1. 开发环境使用text格式（便于阅读），生产环境使用json格式（便于ELK/Loki采集）
// 2. ContextHandler自动从context提取request_id、trace_id、span_id，
//    同一请求的所有日志都能串起来
// 3. 请求级logger由HTTP中间件注入context，业务代码用FromContext获取
//
// 使用示例：
//
//	log := logger.FromContext(ctx)
//	log.Info("订单创建成功", "order_id", id)
//	// → time=... level=INFO msg=订单创建成功 request_id=9f1c... order_id=K7Q042
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// Config 日志配置
type Config struct {
	Level        string // debug | info | warn | error
	Format       string // text | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool   // 是否输出源码位置
}

// New 根据配置创建logger，并设置为slog默认logger
// 返回的closer用于关闭日志文件（输出到stdout/stderr时是空操作）
func New(cfg Config) (*slog.Logger, func() error, error) {
	w, closer, err := openOutput(cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(cfg.Level),
		AddSource: cfg.EnableCaller,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(NewContextHandler(handler))
	slog.SetDefault(l)
	return l, closer, nil
}

// ParseLevel 解析日志级别，无法识别时使用info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch output {
	case "", "stdout":
		return os.Stdout, noop, nil
	case "stderr":
		return os.Stderr, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		return f, f.Close, nil
	}
}

// =========================================
// Context传递
// =========================================

type loggerKey struct{}
type requestIDKey struct{}

// WithRequestID 把请求ID写入context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext 读取请求ID，没有时返回空字符串
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// Inject 把请求级logger写入context
func Inject(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext 获取请求级logger，没有时返回默认logger
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

// =========================================
// ContextHandler
// =========================================

// ContextHandler 在每条日志上附加request_id和链路追踪ID
type ContextHandler struct {
	slog.Handler
}

// NewContextHandler 包装一个slog.Handler
func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

// Handle 追加context中的属性后交给底层Handler
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	spanContext := trace.SpanContextFromContext(ctx)
	if spanContext.HasTraceID() {
		r.AddAttrs(slog.String("trace_id", spanContext.TraceID().String()))
	}
	if spanContext.HasSpanID() {
		r.AddAttrs(slog.String("span_id", spanContext.SpanID().String()))
	}
	return h.Handler.Handle(ctx, r)
}

// WithAttrs 保持ContextHandler包装（否则With()之后会丢失context属性）
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup 同上
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
