package model

import "time"

// PriceDetail 商品的一条调价记录。
// “当前价” = applied_at 已到达的记录里最新的那条。
type PriceDetail struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	AdminID   string    `gorm:"size:64;not null" json:"admin_id"`
	ProductID string    `gorm:"size:64;not null;index" json:"product_id"`
	NewPrice  int64     `gorm:"not null" json:"new_price"` // 单位：đồng
	AppliedAt time.Time `gorm:"not null;index" json:"applied_at"`
}

func (PriceDetail) TableName() string { return "price_details" }
