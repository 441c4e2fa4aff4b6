package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/domain/order"
	"github.com/kiwi/lemonade/internal/infrastructure/config"
	"github.com/kiwi/lemonade/internal/infrastructure/messaging"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/database"
	"github.com/kiwi/lemonade/internal/infrastructure/persistence/redis"
	"github.com/kiwi/lemonade/internal/interface/http/dto"
)

// openRepository 按storage.driver打开订单存储
// 只有redis驱动才连接Redis
func openRepository(cfg *config.Config) (order.Repository, func(), error) {
	var client *goredis.Client
	if cfg.Storage.Driver == config.DriverRedis {
		var err error
		client, err = redis.NewClient(cfg)
		if err != nil {
			return nil, nil, err
		}
	}

	repo, cleanup, err := persistence.NewOrderRepository(cfg, client)
	if err != nil {
		if client != nil {
			client.Close()
		}
		return nil, nil, err
	}

	return repo, func() {
		cleanup()
		if client != nil {
			client.Close()
		}
	}, nil
}

// lemonadectl migrate
func (c *cli) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "创建或更新订单表（仅关系库驱动）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Storage.IsRelational() {
				return fmt.Errorf("存储驱动%q不需要迁移", cfg.Storage.Driver)
			}

			// NewDB会执行迁移
			db, err := database.NewDB(cfg)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "迁移完成（%s）\n", cfg.Storage.Driver)
			return nil
		},
	}
}

// lemonadectl orders create|list|delete
func (c *cli) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "管理订单",
	}
	cmd.AddCommand(c.ordersCreateCmd(), c.ordersListCmd(), c.ordersDeleteCmd())
	return cmd
}

func (c *cli) ordersCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "以顾客姓名下单",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			repo, cleanup, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			publisher, closePublisher := messaging.NewEventPublisher(cfg)
			defer closePublisher()

			resp, err := apporder.NewCreateOrderUseCase(repo, nil, publisher).
				Execute(cmd.Context(), apporder.CreateOrderRequest{CustomerName: args[0]})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "下单成功：%s %s %s\n", resp.ID, resp.CustomerName, dto.FormatTime(resp.CreatedAt))
			return nil
		},
	}
}

func (c *cli) ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出全部订单和统计",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loc, err := cfg.Order.Location()
			if err != nil {
				return err
			}
			repo, cleanup, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			resp, err := apporder.NewListOrdersUseCase(repo, cfg.Order.UnitPriceCents, loc).Execute(cmd.Context())
			if err != nil {
				return err
			}
			return renderOrders(cmd.OutOrStdout(), resp)
		},
	}
}

// renderOrders 输出订单表格和统计行
func renderOrders(w io.Writer, resp *apporder.ListOrdersResponse) error {
	table := tablewriter.NewWriter(w)
	table.Header("订单号", "顾客", "下单时间")
	for _, o := range resp.Orders {
		if err := table.Append(o.ID, o.CustomerName, dto.FormatTime(o.CreatedAt)); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "订单总数: %s  今日订单: %s  营业额: %s\n",
		strconv.Itoa(resp.Stats.Total), strconv.Itoa(resp.Stats.Today), resp.Stats.Revenue)
	return err
}

func (c *cli) ordersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "按订单号删除订单",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			repo, cleanup, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			publisher, closePublisher := messaging.NewEventPublisher(cfg)
			defer closePublisher()

			resp, err := apporder.NewDeleteOrderUseCase(repo, publisher).Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "已删除订单：%s\n", resp.ID)
			return nil
		},
	}
}
