package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
	"github.com/locey/MemoryBadges/BadgeEnd/base/kit/validator"
	"github.com/locey/MemoryBadges/BadgeEnd/base/xhttp"
	"github.com/locey/MemoryBadges/BadgeEnd/service/badge"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/service/v1"
	"github.com/locey/MemoryBadges/BadgeEnd/types/v1"
)

// ClaimBadgeHandler 签发领取参数
func ClaimBadgeHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := types.ClaimRequest{}
		if err := c.ShouldBindBodyWithJSON(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg(err.Error()))
			return
		}

		if err := validator.Verify(&req); err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg(err.Error()))
			return
		}

		res, err := service.ClaimBadge(c.Request.Context(), svcCtx, req)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// GetBadgesHandler 获取某地址全部徽章的解锁/领取状态
func GetBadgesHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		if address == "" {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg("user addr is null"))
			return
		}

		res, err := service.GetBadges(c.Request.Context(), svcCtx, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// GetBadgeDefinitionsHandler 获取徽章目录（不做评估）
func GetBadgeDefinitionsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		xhttp.OkJson(c, badge.Definitions())
	}
}

// GetClaimHistoryHandler 获取某地址的领取参数签发历史
func GetClaimHistoryHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		address := c.Params.ByName("address")
		if address == "" {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg("user addr is null"))
			return
		}

		res, err := service.GetClaimHistory(c.Request.Context(), svcCtx, address)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

func parseTokenID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
