package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
	"github.com/locey/MemoryBadges/BadgeEnd/base/xhttp"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/service/v1"
)

// GetProfileHandler 获取归一化后的身份Profile
func GetProfileHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		if address == "" {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg("user addr is null"))
			return
		}

		res, err := service.GetProfile(c.Request.Context(), svcCtx, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
