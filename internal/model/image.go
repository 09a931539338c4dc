package model

import "time"

// Image 上传的图片，内容直接落库，外部只暴露 ID。
type Image struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	FileName    string `gorm:"size:255" json:"file_name"`
	ContentType string `gorm:"size:64;not null" json:"content_type"`
	Data        []byte `gorm:"not null" json:"-"`
}

func (Image) TableName() string { return "images" }
