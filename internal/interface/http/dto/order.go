package dto

import (
	"time"

	apporder "github.com/kiwi/lemonade/internal/application/order"
)

// timeLayout 响应中的时间格式（ISO-8601，毫秒）
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// CreateOrderRequest 顾客下单请求
// 说明：姓名是否为空由应用层判断（去除空白后），这里不加binding约束
type CreateOrderRequest struct {
	CustomerName string `json:"customer_name" example:"Alice"`
}

// OrderResponse 订单信息
type OrderResponse struct {
	ID           string `json:"id" example:"K7Q123"`
	CustomerName string `json:"customer_name" example:"Alice"`
	CreatedAt    string `json:"created_at" example:"2024-06-01T09:00:00.123+08:00"`
}

// StatsResponse 后台统计卡片
type StatsResponse struct {
	Total        int    `json:"total" example:"3"`
	Today        int    `json:"today" example:"2"`
	RevenueCents int64  `json:"revenue_cents" example:"750"`
	Revenue      string `json:"revenue" example:"7.50"`
}

// ListOrdersResponse 后台订单列表
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Stats  StatsResponse   `json:"stats"`
}

// DeleteOrderResponse 删除结果
type DeleteOrderResponse struct {
	ID string `json:"id" example:"K7Q123"`
}

// FormatTime 格式化时间（本地时区）
func FormatTime(t time.Time) string {
	return t.Local().Format(timeLayout)
}

// ToOrderResponse 应用层结果 → HTTP响应
func ToOrderResponse(o *apporder.CreateOrderResponse) *OrderResponse {
	return &OrderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		CreatedAt:    FormatTime(o.CreatedAt),
	}
}

// ToListOrdersResponse 应用层列表 → HTTP响应
func ToListOrdersResponse(r *apporder.ListOrdersResponse) *ListOrdersResponse {
	orders := make([]OrderResponse, len(r.Orders))
	for i, o := range r.Orders {
		orders[i] = OrderResponse{
			ID:           o.ID,
			CustomerName: o.CustomerName,
			CreatedAt:    FormatTime(o.CreatedAt),
		}
	}
	return &ListOrdersResponse{
		Orders: orders,
		Stats: StatsResponse{
			Total:        r.Stats.Total,
			Today:        r.Stats.Today,
			RevenueCents: r.Stats.RevenueCents,
			Revenue:      r.Stats.Revenue,
		},
	}
}
