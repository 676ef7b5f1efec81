package errcode

import "net/http"

// Err 业务错误，带HTTP状态码
type Err struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Status int    `json:"-"`
}

func (e *Err) Error() string {
	return e.Msg
}

func NewErr(code int, msg string, status int) *Err {
	return &Err{Code: code, Msg: msg, Status: status}
}

// NewCustomErr 自定义错误，默认按内部错误处理
func NewCustomErr(msg string) *Err {
	return &Err{Code: 50000, Msg: msg, Status: http.StatusInternalServerError}
}

var (
	ErrInvalidParams = NewErr(40000, "invalid request", http.StatusBadRequest)
	ErrRateLimited   = NewErr(42900, "rate limit exceeded, please try again later", http.StatusTooManyRequests)
	ErrNotEligible   = NewErr(40300, "not eligible", http.StatusForbidden)
	ErrUnknownBadge  = NewErr(40400, "invalid badge id", http.StatusNotFound)
	ErrAlreadyClaim  = NewErr(40900, "badge already claimed", http.StatusConflict)
	// 上游不可用与内部错误对外只返回笼统信息，细节只打日志
	ErrUpstream = NewErr(50200, "service temporarily unavailable", http.StatusInternalServerError)
	ErrInternal = NewErr(50000, "internal error", http.StatusInternalServerError)
)

// WithMsg 复制一个错误并替换对外文案，状态码保持不变
func (e *Err) WithMsg(msg string) *Err {
	return &Err{Code: e.Code, Msg: msg, Status: e.Status}
}
