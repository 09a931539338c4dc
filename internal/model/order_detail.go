package model

// OrderDetail 订单行。存在任意一行即阻止对应商品被删除。
type OrderDetail struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	OrderID   string `gorm:"size:64;not null;index" json:"order_id"`
	ProductID string `gorm:"size:64;not null;index" json:"product_id"`
	Quantity  int64  `gorm:"not null;default:1" json:"quantity"`
	Price     int64  `gorm:"not null" json:"price"` // 下单时生效的单价
}

func (OrderDetail) TableName() string { return "order_details" }
