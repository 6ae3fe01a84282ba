package apperr

import (
	"errors"
	"fmt"
)

// Kind 错误类别，决定 HTTP 状态码
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthentication
	KindAuthorization
	KindNotFound
	KindConflict
)

// Error 业务错误
// Detail 为面向调用方的提示信息；Fields 仅在字段级校验失败时填充
type Error struct {
	Kind   Kind
	Detail string
	Fields map[string][]string
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("validation failed: %v", e.Fields)
	}
	return e.Detail
}

// New 构造指定类别的错误
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Validation 输入校验错误 (400)
func Validation(detail string) *Error {
	return &Error{Kind: KindValidation, Detail: detail}
}

// FieldErrors 字段级校验错误 (400)，响应体为 {field: [messages]}
func FieldErrors(fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Fields: fields}
}

// Authentication 未认证 (401)
func Authentication(detail string) *Error {
	return &Error{Kind: KindAuthentication, Detail: detail}
}

// Forbidden 无权限 (403)
func Forbidden(detail string) *Error {
	return &Error{Kind: KindAuthorization, Detail: detail}
}

// NotFound 资源不存在或已失效 (404)
func NotFound(detail string) *Error {
	return &Error{Kind: KindNotFound, Detail: detail}
}

// Conflict 资源冲突，例如重复点赞 (409)
func Conflict(detail string) *Error {
	return &Error{Kind: KindConflict, Detail: detail}
}

// KindOf 提取错误类别，非业务错误一律视为内部错误
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// AsError 提取业务错误，便于读取 Fields
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
