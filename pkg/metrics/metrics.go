// Package metrics 提供基于Prometheus的指标收集
//
// # 指标类型
//
// **1. Counter（计数器）**：只增不减的累计值
//   - 示例：下单总数、删除总数、后台登录次数
//
// **2. Gauge（仪表盘）**：可增可减的瞬时值
//   - 示例：正在处理的HTTP请求数
//
// **3. Histogram（直方图）**：观测值的分布
//   - 示例：HTTP请求耗时、下单耗时（自动计算P50、P90、P99）
//
// # 使用示例
//
//	// 1. 暴露/metrics端点（router中已注册）
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
//	// 2. 在业务代码中记录指标
//	start := time.Now()
//	if err := repo.Create(ctx, o); err != nil {
//	    metrics.IncCounter(metrics.OrdersFailedTotal)
//	    return err
//	}
//	metrics.IncCounter(metrics.OrdersCreatedTotal)
//	metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
//
// # 命名规范
//
//  1. Counter以`_total`结尾
//  2. Histogram以单位结尾（`_seconds`）
//  3. 避免高基数标签：❌ 不要用订单号作为标签，✅ 用method、status、result
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 指标在包初始化时注册到默认Registry（promauto），不需要手动InitMetrics
var (
	// HTTP请求相关指标

	// HTTPRequestsTotal HTTP请求总数（Counter）
	// 标签：method（GET/POST）、path（路由模板，如/api/v1/admin/orders/:id）、status（200/500）
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP请求总数",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration HTTP请求耗时（Histogram）
	// 桶设置：1ms、10ms、100ms、500ms、1s、5s、10s
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP请求耗时（秒）",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInProgress 正在处理的HTTP请求数（Gauge）
	HTTPRequestsInProgress = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_progress",
			Help: "正在处理的HTTP请求数",
		},
	)

	// 订单业务指标

	// OrdersCreatedTotal 下单成功总数（Counter）
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "下单成功总数",
		},
	)

	// OrdersFailedTotal 下单失败总数（Counter）
	// 标签：reason（blank_name=姓名为空，id_conflict=订单号冲突，store_error=存储异常）
	OrdersFailedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_failed_total",
			Help: "下单失败总数",
		},
		[]string{"reason"},
	)

	// OrdersDeletedTotal 删除订单总数（Counter）
	OrdersDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_deleted_total",
			Help: "删除订单总数",
		},
	)

	// OrderCreationDuration 下单耗时（Histogram）
	// 只有一次存储调用，桶比HTTP更细
	OrderCreationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_creation_duration_seconds",
			Help:    "下单耗时（秒）",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	// 后台指标

	// AdminLoginsTotal 后台登录次数（Counter）
	// 标签：result（success/failure）
	AdminLoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_logins_total",
			Help: "后台登录次数",
		},
		[]string{"result"},
	)

	// 消息队列指标

	// MessagesPublishedTotal 消息发布总数（Counter）
	// 标签：routing_key（路由键）、result（success/failure/rejected，rejected表示熔断丢弃）
	MessagesPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "messages_published_total",
			Help: "消息发布总数",
		},
		[]string{"routing_key", "result"},
	)
)

// IncCounter 递增Counter（便捷函数）
func IncCounter(counter prometheus.Counter) {
	counter.Inc()
}

// IncCounterVec 递增CounterVec（带标签）
func IncCounterVec(counter *prometheus.CounterVec, labels map[string]string) {
	counter.With(labels).Inc()
}

// IncGauge 递增Gauge
func IncGauge(gauge prometheus.Gauge) {
	gauge.Inc()
}

// DecGauge 递减Gauge
func DecGauge(gauge prometheus.Gauge) {
	gauge.Dec()
}

// ObserveHistogram 记录Histogram观测值
func ObserveHistogram(histogram prometheus.Histogram, value float64) {
	histogram.Observe(value)
}

// ObserveHistogramVec 记录HistogramVec观测值（带标签）
func ObserveHistogramVec(histogram *prometheus.HistogramVec, labels map[string]string, value float64) {
	histogram.With(labels).Observe(value)
}
