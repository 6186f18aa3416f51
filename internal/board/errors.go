package board

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 标识业务错误类别，调用方据此映射 HTTP 状态码或重试策略。
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindValidation   Kind = "validation"
	KindDuplicate    Kind = "duplicate"
	KindStore        Kind = "store"
)

// Error 是核心层统一的业务错误载体。
// Fields 在校验失败时携带字段级明细，便于调用方回显表单。
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Fields))
	for field, detail := range e.Fields {
		parts = append(parts, field+": "+detail)
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NewError 构造指定类别的业务错误。
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError 构造携带字段明细的校验错误。
func NewValidationError(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// NewStoreError 将存储层的意外失败包装为不透明的 Store 错误。
// 核心层不做重试，由存储适配器自行决定重试策略。
func NewStoreError(op string, err error) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf("%s: store failure", op), cause: err}
}

// IsKind 判断错误链中是否存在指定类别的业务错误。
func IsKind(err error, kind Kind) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind == kind
	}
	return false
}
