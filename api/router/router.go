package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/locey/MemoryBadges/BadgeEnd/api/v1"
	"github.com/locey/MemoryBadges/BadgeEnd/base/logger/xzap"
	"github.com/locey/MemoryBadges/BadgeEnd/service/svc"
)

func NewRouter(svcCtx *svc.ServerCtx) *gin.Engine {
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))
	r.Use(traceMiddleware())

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/badges/definitions", v1.GetBadgeDefinitionsHandler(svcCtx))
		apiV1.GET("/badges/claims/:address", v1.GetClaimHistoryHandler(svcCtx))
		apiV1.GET("/badges/:address", v1.GetBadgesHandler(svcCtx))
		apiV1.POST("/badges/claim", v1.ClaimBadgeHandler(svcCtx))

		apiV1.GET("/profile/:address", v1.GetProfileHandler(svcCtx))

		apiV1.GET("/sbt/stats", v1.GetSbtStatsHandler(svcCtx))
		apiV1.GET("/sbt/metadata/:tokenId", v1.GetSbtMetadataHandler(svcCtx))
	}

	return r
}

// traceMiddleware 为每个请求生成trace id，贯穿后续日志
func traceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader("X-Trace-Id")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx := xzap.CtxWithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Trace-Id", traceID)
		c.Next()
	}
}
