package response

// ResponseCode 业务码，失败码定义在 errors.go
type ResponseCode int

const Success ResponseCode = 100

// Response 接口统一返回体 {message, code, data}
type Response struct {
	Message string       `json:"message"`
	Code    ResponseCode `json:"code"`
	Data    any          `json:"data"`
}

type Option func(*Response)

func WithMessage(message string) Option {
	return func(r *Response) {
		r.Message = message
	}
}

func WithData(data any) Option {
	return func(r *Response) {
		r.Data = data
	}
}

// New 默认是无数据的成功响应
func New(opts ...Option) Response {
	r := Response{Message: "success", Code: Success}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func SuccessResponse(data any) Response {
	return New(WithData(data))
}

// CreatedResponse 资源创建成功
func CreatedResponse(data any) Response {
	return New(WithMessage("created"), WithData(data))
}

// ErrorResponse 只暴露业务码与面向用户的信息，内部错误不进入响应体
func ErrorResponse(err *BusinessError) Response {
	return Response{Message: err.Msg, Code: err.Code}
}
