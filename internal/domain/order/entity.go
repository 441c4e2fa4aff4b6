package order

import (
	"strings"
	"time"
)

// Order 订单实体
// 教学要点:
// 1. ID既是顾客手里的取餐码,也是存储主键(只在创建时赋值,之后不可修改)
// 2. CustomerName创建后不可修改(系统中没有任何更新流程)
// 3. CreatedAt由存储层在插入时写入,领域层不自行赋值
// 4. 删除是硬删除,删除后订单永久消失(没有软删除/墓碑)
type Order struct {
	ID           string    // 6位订单号(前3位字母数字 + 后3位时间戳数字)
	CustomerName string    // 顾客姓名(已去除首尾空白)
	CreatedAt    time.Time // 下单时间(存储层赋值)
}

// NewOrder 创建新订单(工厂方法)
// 说明:
// 1. 订单号由外部传入(见GenerateOrderID)
// 2. 姓名在这里统一做trim,调用方应先用NormalizeCustomerName校验非空
// 3. CreatedAt保持零值,交给存储层赋值
func NewOrder(id, customerName string) *Order {
	return &Order{
		ID:           id,
		CustomerName: strings.TrimSpace(customerName),
	}
}

// NormalizeCustomerName 规范化顾客姓名
// 规则:去除首尾空白后必须非空,除此之外不做任何校验(长度、字符集都不限制)
func NormalizeCustomerName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrBlankCustomerName
	}
	return trimmed, nil
}

// CreatedOn 判断订单是否在loc时区下与now处于同一个自然日
// 用于后台统计"今日订单"
func (o *Order) CreatedOn(now time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	y1, m1, d1 := o.CreatedAt.In(loc).Date()
	y2, m2, d2 := now.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
