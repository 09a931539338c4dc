package model

import "time"

// Account 后台账号，username 唯一性由持久层约束保证。
type Account struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Username string `gorm:"size:128;uniqueIndex;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Status   int    `gorm:"not null;default:1" json:"status"`
	RoleID   string `gorm:"size:64" json:"role_id"`
}

// 账号状态：1 在职可接收通知，0 停用。
const (
	AccountActive   = 1
	AccountInactive = 0
)

func (Account) TableName() string { return "accounts" }
