package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"

	"github.com/kiwi/lemonade/pkg/tracing"
)

const tracerName = "lemonade/http"

// HeaderTraceID 响应头，便于按TraceID检索链路
const HeaderTraceID = "X-Trace-ID"

// Tracing 为每个请求创建根Span
// 从请求头提取W3C traceparent，上游已有链路时接续；TraceID写入X-Trace-ID响应头
func Tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}

		ctx, span := tracing.StartSpan(ctx, tracerName, fmt.Sprintf("%s %s", c.Request.Method, route))
		defer span.End()

		// 未启用链路追踪时没有有效TraceID，不写响应头
		if traceID := tracing.ExtractTraceID(ctx); traceID != "" {
			c.Header(HeaderTraceID, traceID)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		span.SetAttributes(
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", c.Writer.Status()),
		)
	}
}
