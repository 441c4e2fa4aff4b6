package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/kiwi/lemonade/internal/domain/order"
	apperrors "github.com/kiwi/lemonade/pkg/errors"
)

// orderRepository 订单仓储实现(GORM,支持MySQL/PostgreSQL/SQLite)
// 教学要点:
// 1. 每个操作只发一条SQL,不重试
// 2. CreatedAt由GORM在插入时通过NowFunc赋值
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 插入订单
// 教学要点:
// 1. 使用Create而不是Save,Save遇到相同主键会变成UPDATE(覆盖旧订单)
// 2. 主键冲突翻译为ErrOrderIDConflict
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	// 1. 领域实体 → GORM模型
	model := toOrderModel(o)

	// 2. 插入数据库
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderIDConflict
		}
		return apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "创建订单失败")
	}

	// 3. 回填存储层赋值的下单时间
	o.CreatedAt = model.CreatedAt
	return nil
}

// List 列出全部订单(按下单时间倒序)
func (r *orderRepository) List(ctx context.Context) ([]*order.Order, error) {
	var models []OrderModel

	// ID作为第二排序键,同一毫秒内的订单顺序保持稳定
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapCode(err, apperrors.ErrCodeDatabaseError, "查询订单列表失败")
	}

	// 转换为领域实体
	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, nil
}

// Delete 按订单号删除(硬删除)
func (r *orderRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&OrderModel{})
	if result.Error != nil {
		return apperrors.WrapCode(result.Error, apperrors.ErrCodeDatabaseError, "删除订单失败")
	}

	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	return &OrderModel{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		CreatedAt:    o.CreatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	return &order.Order{
		ID:           model.ID,
		CustomerName: model.CustomerName,
		CreatedAt:    model.CreatedAt,
	}
}
