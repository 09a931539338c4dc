package service

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isUniqueViolation 识别唯一索引冲突。
// sqlite 驱动不总是翻译成 gorm.ErrDuplicatedKey，保留字符串兜底。
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "UNIQUE") || strings.Contains(s, "unique")
}
