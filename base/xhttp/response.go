package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
)

// ErrResp 统一的失败响应结构
type ErrResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Error 按errcode映射HTTP状态码，非errcode错误兜底为500
func Error(c *gin.Context, err error) {
	e, ok := err.(*errcode.Err)
	if !ok {
		e = errcode.ErrInternal
	}
	c.JSON(e.Status, ErrResp{Success: false, Error: e.Msg})
}
