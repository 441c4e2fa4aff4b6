package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apporder "github.com/kiwi/lemonade/internal/application/order"
	"github.com/kiwi/lemonade/internal/domain/order"
	"github.com/kiwi/lemonade/internal/infrastructure/messaging"
	"github.com/kiwi/lemonade/internal/interface/http/dto"
	"github.com/kiwi/lemonade/pkg/mq"
)

// lemonadectl gen-id [-n N]
// 只生成订单号，不访问存储，可用来观察订单号格式
func (c *cli) genIDCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "gen-id",
		Short: "生成订单号（不落库）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return fmt.Errorf("-n必须大于0，当前为%d", count)
			}
			gen := order.NewIDGenerator(nil, nil)
			for i := 0; i < count; i++ {
				fmt.Fprintln(cmd.OutOrStdout(), gen.Generate())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "生成数量")
	return cmd
}

// lemonadectl events watch
func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "订单事件",
	}

	watch := &cobra.Command{
		Use:   "watch",
		Short: "订阅并打印订单事件，Ctrl+C退出",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.MQ.Enabled {
				return errors.New("mq.enabled=false，没有可订阅的事件")
			}

			consumer, err := messaging.NewConsumer(cfg, []string{"order.*"})
			if err != nil {
				return err
			}
			defer consumer.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "正在订阅 %s（order.*）...\n", cfg.MQ.Exchange)
			return consumer.Consume(ctx, func(d mq.Delivery) error {
				printEvent(cmd.OutOrStdout(), d)
				return nil
			})
		},
	}

	cmd.AddCommand(watch)
	return cmd
}

// printEvent 按路由键解析事件并输出一行
// 无法解析的消息原样输出，不重新入队
func printEvent(out io.Writer, d mq.Delivery) {
	switch d.RoutingKey {
	case apporder.RoutingKeyOrderCreated:
		var e apporder.OrderCreatedEvent
		if err := json.Unmarshal(d.Body, &e); err == nil {
			fmt.Fprintf(out, "[%s] %s %s %s\n", d.RoutingKey, e.OrderID, e.CustomerName, dto.FormatTime(e.CreatedAt))
			return
		}
	case apporder.RoutingKeyOrderDeleted:
		var e apporder.OrderDeletedEvent
		if err := json.Unmarshal(d.Body, &e); err == nil {
			fmt.Fprintf(out, "[%s] %s\n", d.RoutingKey, e.OrderID)
			return
		}
	}
	fmt.Fprintf(out, "[%s] %s\n", d.RoutingKey, string(d.Body))
}
