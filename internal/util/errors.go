package util

import "errors"

var (
	ErrUnauthorized = errors.New("not authorized")
	ErrQuizNotFound = errors.New("quiz not found")
)

// ValidationError 请求字段缺失或格式错误，Message 原样返回给调用方
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
