package redis

import (
	"context"

	rd "github.com/redis/go-redis/v9"
)

// AppendOrderEvent 将下单事件写入 outbox stream，由 Relay 异步转发 Kafka。
// 字段保持扁平的 string map，方便 XReadGroup 侧解析。
func AppendOrderEvent(ctx context.Context, rdb *rd.Client, stream, orderID, fullName string) error {
	return rdb.XAdd(ctx, &rd.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"order_id":  orderID,
			"full_name": fullName,
		},
	}).Err()
}
