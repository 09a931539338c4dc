package queue

import "fmt"

// OrderPlacedMessage 是写入 Kafka 的下单事件，消费侧据此生成订单通知。
type OrderPlacedMessage struct {
	OrderID  string `json:"order_id"`
	FullName string `json:"full_name"`
}

// Validate 做最小字段校验，防止消费者处理脏消息。
func (m OrderPlacedMessage) Validate() error {
	if m.OrderID == "" {
		return fmt.Errorf("order_id is required")
	}
	if m.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	return nil
}
