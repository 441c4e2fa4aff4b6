package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 1. 由domain层定义接口,infrastructure层实现(MySQL/PostgreSQL/SQLite/Redis)
// 2. 只有三个操作:插入、按创建时间倒序列出、按ID删除,没有Update
type Repository interface {
	// Create 插入一条订单
	// 约定:
	// 1. CreatedAt由存储层赋值并回填到o
	// 2. ID重复时必须返回ErrOrderIDConflict,不能静默覆盖
	Create(ctx context.Context, o *Order) error

	// List 列出全部订单,按CreatedAt倒序(无分页、无过滤)
	List(ctx context.Context) ([]*Order, error)

	// Delete 按ID删除订单(硬删除)
	// 订单不存在时返回ErrOrderNotFound
	Delete(ctx context.Context, id string) error
}
