// lemonadectl 柠檬水订单服务的运维命令行
//
//	lemonadectl migrate                 建表（关系库）
//	lemonadectl orders create NAME      代客下单
//	lemonadectl orders list             订单列表+统计
//	lemonadectl orders delete ID        删除订单
//	lemonadectl gen-id -n 5             生成订单号（不落库）
//	lemonadectl events watch            订阅订单事件（需要mq.enabled）
//
// 所有命令都读取与API服务相同的配置，--config可指定配置文件
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// cli 命令共享的状态
type cli struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "lemonadectl",
		Short:         "柠檬水订单服务命令行",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "配置文件路径（默认查找./config/config.yaml）")

	// 数据库
	root.AddCommand(c.migrateCmd())

	// 订单
	root.AddCommand(c.ordersCmd())
	root.AddCommand(c.genIDCmd())

	// 事件
	root.AddCommand(c.eventsCmd())

	return root
}

// loadConfig 加载配置并初始化logger
// 命令行默认只输出warn以上的日志，避免干扰表格输出
func (c *cli) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(c.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if level == "info" {
		level = "warn"
	}
	if _, _, err := logger.New(logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Output: "stderr",
	}); err != nil {
		return nil, fmt.Errorf("初始化日志失败: %w", err)
	}
	return cfg, nil
}
