package api

import (
	"Wellspring/internal/api/middleware"
	"Wellspring/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		newsGroup := apiGroup.Group("/news")
		{
			// 列表与详情可匿名访问，有登录态时详情会上报浏览
			authOptGroup := newsGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/list", group.NewsHandler.GetNewsList)
				authOptGroup.GET("/detail/:news_id", group.NewsHandler.GetNewsDetail)
			}

			selfTestGroup := newsGroup.Group("/selftest")
			selfTestGroup.Use(middleware.AuthOptionalMiddleware())
			{
				selfTestGroup.GET("/detail/:news_id", group.NewsHandler.GetSelfTestDetail)
			}

			newsGroup.GET("/:news_id/comments", group.EngageHandler.GetComments)
			newsGroup.GET("/:news_id/metrics", group.EngageHandler.GetMetrics)
			newsGroup.GET("/:news_id/trend", group.NewsHandler.GetTrend)

			authGroup := newsGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			{
				authGroup.POST("/:news_id/view", group.EngageHandler.RecordView)
				authGroup.POST("/:news_id/transmit", group.EngageHandler.RecordTransmit)
				authGroup.POST("/:news_id/like", group.EngageHandler.Like)
				authGroup.POST("/comment", group.EngageHandler.CreateComment)
				authGroup.GET("/:news_id/audit", group.EngageHandler.GetViewAudit)
			}
		}

		pointGroup := apiGroup.Group("/point")
		{
			pointGroup.Use(middleware.AuthMiddleware())
			{
				pointGroup.GET("/balance", group.PointHandler.GetBalance)
				pointGroup.GET("/records", group.PointHandler.GetPointRecords)
				pointGroup.GET("/dashboard", group.PointHandler.GetShareDashboard)
			}
		}
	}

	return r
}
