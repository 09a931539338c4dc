package queue

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"shop_backoffice/internal/service"
)

// Consumer 消费下单事件并为后台员工生成通知。
type Consumer struct {
	r             *kafka.Reader
	notifications *service.NotificationService
	logger        *slog.Logger
}

func NewConsumer(brokers []string, topic, groupID string, notifications *service.NotificationService, logger *slog.Logger) *Consumer {
	return &Consumer{
		r: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 1e3,
			MaxBytes: 1e6,
		}),
		notifications: notifications,
		logger:        logger,
	}
}

func (c *Consumer) Close() error { return c.r.Close() }

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.r.ReadMessage(ctx)
		if err != nil {
			return // ctx cancel / 连接断开等
		}

		var msg OrderPlacedMessage
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			c.logger.Error("consumer unmarshal", "error", err)
			continue
		}
		if err := msg.Validate(); err != nil {
			c.logger.Error("consumer invalid message", "error", err)
			continue
		}

		// 幂等性由 notifications 表的 order_id 唯一索引兜底，
		// 重复消息在 FanOut 内部直接当作成功。
		if err := c.notifications.FanOut(ctx, msg.OrderID, msg.FullName); err != nil {
			c.logger.Error("consumer fan out", "order_id", msg.OrderID, "error", err)
			continue
		}
	}
}
