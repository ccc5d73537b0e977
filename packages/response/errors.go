package response

import "net/http"

// 业务错误码
const (
	// 失败
	Fail ResponseCode = 0
	// 参数解析错误
	ParseError ResponseCode = 1
	// 参数错误
	InvalidParameter ResponseCode = 2
	// 请求不合法（业务上无意义的操作）
	BadRequest ResponseCode = 3
	// 未登录或令牌无效
	Unauthorized ResponseCode = 4
	// 无权限
	Forbidden ResponseCode = 5
	// 资源不存在
	NotFound ResponseCode = 6
	// 唯一性冲突
	Conflict ResponseCode = 7
	// 请求过于频繁
	TooManyRequests ResponseCode = 8
	// 支付网关不可用
	GatewayUnavailable ResponseCode = 9
)

var httpStatusMap = map[ResponseCode]int{
	Fail:               http.StatusInternalServerError,
	ParseError:         http.StatusBadRequest,
	InvalidParameter:   http.StatusUnprocessableEntity,
	BadRequest:         http.StatusBadRequest,
	Unauthorized:       http.StatusUnauthorized,
	Forbidden:          http.StatusForbidden,
	NotFound:           http.StatusNotFound,
	Conflict:           http.StatusConflict,
	TooManyRequests:    http.StatusTooManyRequests,
	GatewayUnavailable: http.StatusServiceUnavailable,
}

// BusinessError 业务错误
// Msg 面向用户返回，Err 只写入日志
type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// HTTPStatus 业务码对应的 HTTP 状态码
func (e *BusinessError) HTTPStatus() int {
	if status, ok := httpStatusMap[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

func newWithCode(code ResponseCode, msg string, opts []ErrorOption) *BusinessError {
	all := append([]ErrorOption{WithErrorCode(code), WithErrorMessage(msg)}, opts...)
	return NewBusinessError(all...)
}

func NewNotFound(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(NotFound, msg, opts)
}

func NewBadRequest(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(BadRequest, msg, opts)
}

func NewForbidden(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(Forbidden, msg, opts)
}

func NewUnauthorized(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(Unauthorized, msg, opts)
}

func NewConflict(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(Conflict, msg, opts)
}

// NewGatewayUnavailable 外部支付网关不可用
func NewGatewayUnavailable(msg string, opts ...ErrorOption) *BusinessError {
	return newWithCode(GatewayUnavailable, msg, opts)
}

// NewInternal 内部错误，err 仅用于日志
func NewInternal(err error) *BusinessError {
	return NewBusinessError(
		WithErrorCode(Fail),
		WithErrorMessage("服务器内部错误"),
		WithError(err),
	)
}
