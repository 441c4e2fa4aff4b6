package order

import (
	"fmt"
	"time"
)

// DefaultUnitPriceCents 默认单价(分),一杯柠檬水2.50
const DefaultUnitPriceCents int64 = 250

// Stats 后台统计数据
// 说明:这些数字都由当前列出的订单集合实时计算,不落库
// Revenue只是示意值(订单数 × 固定单价),与真实支付无关
type Stats struct {
	Total        int   // 订单总数
	Today        int   // 今日订单数(按本地自然日)
	RevenueCents int64 // 营业额(分)
}

// ComputeStats 根据订单列表计算统计数据
// 参数:
// - orders: 当前列出的订单
// - now: 当前时间(用于判断"今天")
// - loc: 自然日所在时区,nil表示time.Local
// - unitPriceCents: 单价(分)
func ComputeStats(orders []*Order, now time.Time, loc *time.Location, unitPriceCents int64) Stats {
	stats := Stats{Total: len(orders)}
	for _, o := range orders {
		if o.CreatedOn(now, loc) {
			stats.Today++
		}
	}
	stats.RevenueCents = int64(stats.Total) * unitPriceCents
	return stats
}

// FormatAmount 格式化金额(分→元),例如 750 → "7.50"
func FormatAmount(cents int64) string {
	return fmt.Sprintf("%.2f", float64(cents)/100.0)
}
