package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kiwi/lemonade/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按storage.driver选择方言（mysql/postgres/sqlite）
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	// 1. 根据驱动构建方言
	dialector, err := buildDialector(cfg.Storage.Driver, cfg.Database.DSN(cfg.Storage.Driver))
	if err != nil {
		return nil, err
	}

	// 2. 配置GORM日志
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	// 3. 连接数据库
	db, err := open(dialector, logLevel, time.Now)
	if err != nil {
		return nil, err
	}

	// 4. 配置连接池
	// 学习要点：合理的连接池配置对性能至关重要
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	// 最大打开连接数（建议：CPU核数 * 2 + 磁盘数量）
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	// 最大空闲连接数（建议：MaxOpenConns的1/4到1/2）
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)

	// 连接最大存活时间（防止数据库主动断开连接）
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// 5. 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	slog.Info("数据库连接成功", "driver", cfg.Storage.Driver)

	// 6. 自动迁移表结构（开发环境）
	// 注意：生产环境应使用lemonadectl migrate或专门的迁移工具
	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// open 打开连接
// TranslateError让各驱动把主键冲突统一翻译为gorm.ErrDuplicatedKey
func open(dialector gorm.Dialector, logLevel logger.LogLevel, now func() time.Time) (*gorm.DB, error) {
	// 统一存UTC毫秒:SQLite按字符串比较时间,时区偏移不同会打乱排序
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return now().UTC().Truncate(time.Millisecond)
		},
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	return db, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动 %q（支持：mysql, postgres, sqlite）", driver)
	}
}

// Migrate 迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. 生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func Migrate(db *gorm.DB) error {
	// 注意：这里需要使用GORM的模型定义（带tag），不是domain层的实体
	if err := db.AutoMigrate(&OrderModel{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %w", err)
	}
	return nil
}

// OrderModel GORM订单模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/order/entity.go是领域实体，不依赖GORM
// 3. 订单号直接作为主键，重复订单号由主键约束拒绝
// 4. CreatedAt建索引，后台列表按它倒序
type OrderModel struct {
	ID           string    `gorm:"primaryKey;size:6;comment:订单号"`
	CustomerName string    `gorm:"size:255;not null;comment:顾客姓名"`
	CreatedAt    time.Time `gorm:"index;precision:3;comment:下单时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "lemonade_orders"
}
