package model

import "time"

// Product 商品档案。价格不放在这里，历史价格见 PriceDetail。
type Product struct {
	// ID 是后台录入的商品编码，不是自增主键。
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CategoryID  string `gorm:"size:64;not null;index" json:"category_id"`
	Thumbnail   string `gorm:"size:64" json:"thumbnail"` // 指向 images 表的 ID
	Description string `gorm:"type:text" json:"description"`
	Sold        int64  `gorm:"not null;default:0" json:"sold"`
	Quantity    int64  `gorm:"not null;default:0" json:"quantity"`
	Status      int    `gorm:"not null;default:0" json:"status"`
	Featured    bool   `gorm:"not null;default:false" json:"featured"`
}

func (Product) TableName() string { return "products" }
