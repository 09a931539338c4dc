package model

import "time"

// Notification 一条订单通知。order_id 唯一，重复投递时落库冲突即忽略。
type Notification struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	OrderID string `gorm:"size:64;uniqueIndex;not null" json:"order_id"`
	Message string `gorm:"size:512;not null" json:"message"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationDetail 每个接收人一条投递记录，status=false 表示未读。
type NotificationDetail struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	NotificationID string `gorm:"size:64;not null;index" json:"notification_id"`
	AccountID      string `gorm:"size:64;not null;index" json:"account_id"`
	Status         bool   `gorm:"not null;default:false" json:"status"`
}

func (NotificationDetail) TableName() string { return "notification_details" }
