package codes

import "net/http"

// Code 是前后端共享的业务状态码，全局只定义一次，按值引用。
type Code int

const (
	Success        Code = 0
	Error          Code = 1
	EntityExist    Code = 2
	EntityNotExist Code = 3
)

// DomainError 携带业务状态码与面向用户的提示语。
// 基础设施错误不直接外漏：服务层捕获并降级为 Internal。
type DomainError struct {
	Code    Code
	Message string
	Status  int // HTTP 层的映射提示
}

func (e *DomainError) Error() string { return e.Message }

// New 构造一个预期内的业务错误。
func New(code Code, message string) *DomainError {
	status := http.StatusBadRequest
	if code == EntityNotExist {
		status = http.StatusNotFound
	}
	return &DomainError{Code: code, Message: message, Status: status}
}

// Internal 把基础设施故障归一为 Error 码 + 通用提示语。
func Internal(message string) *DomainError {
	return &DomainError{Code: Error, Message: message, Status: http.StatusInternalServerError}
}
