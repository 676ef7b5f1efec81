package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/locey/MemoryBadges/BadgeEnd/base/errcode"
	"github.com/locey/MemoryBadges/BadgeEnd/base/xhttp"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
	"github.com/locey/MemoryBadges/BadgeEnd/service/v1"
)

// GetSbtStatsHandler 获取合约铸造统计
func GetSbtStatsHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := service.GetSbtStats(c.Request.Context(), svcCtx)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}

// GetSbtMetadataHandler 获取token元数据地址
func GetSbtMetadataHandler(svcCtx *svc.ServerCtx) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenID, err := parseTokenID(c.Params.ByName("tokenId"))
		if err != nil {
			xhttp.Error(c, errcode.ErrInvalidParams.WithMsg("invalid token id"))
			return
		}

		res, err := service.GetSbtMetadata(c.Request.Context(), svcCtx, tokenID)
		if err != nil {
			xhttp.Error(c, err)
			return
		}

		xhttp.OkJson(c, res)
	}
}
