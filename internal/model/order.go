package model

import "time"

// Order 顾客订单头。
type Order struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FullName string `gorm:"size:255;not null" json:"full_name"`
	Amount   int64  `gorm:"not null" json:"amount"` // 按下单时的当前价汇总，单位 đồng
	Status   int    `gorm:"not null;default:0" json:"status"`
}

func (Order) TableName() string { return "orders" }
