package model

import "time"

// Category 商品类目。
type Category struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name string `gorm:"size:255;not null" json:"name"`
}

func (Category) TableName() string { return "categories" }
