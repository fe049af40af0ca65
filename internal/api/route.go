package api

import (
	"GreenGrove/internal/api/middleware"
	"GreenGrove/internal/pkg/consts"
	"GreenGrove/internal/pkg/logger"
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

		contentGroup := apiGroup.Group("/contents")
		{
			// 公开读取链路，仅已发布内容
			contentGroup.GET("", group.ContentHandler.ListPublished)
			contentGroup.GET("/search", group.ContentHandler.SearchPublished)
			contentGroup.GET("/detail/:id", group.ContentHandler.GetPublished)

			// 需要登录的管理链路
			authGroup := contentGroup.Group("")
			authGroup.Use(middleware.AuthMiddleware())
			authGroup.Use(middleware.CheckRoles(consts.RoleModerator, consts.RoleAdmin))
			{
				authGroup.POST("", group.ContentHandler.CreateContent)
				authGroup.GET("/self", group.ContentHandler.ListManaged)
				authGroup.GET("/manage/:id", group.ContentHandler.GetManaged)
				authGroup.PUT("/:id", group.ContentHandler.UpdateContent)
				authGroup.DELETE("/:id", group.ContentHandler.DeleteContent)
			}

			// 审核链路，单条边上的细粒度授权由状态机内部判定
			auditGroup := authGroup.Group("/audit")
			{
				auditGroup.GET("/list", group.AuditHandler.ListAudit)
				auditGroup.PUT("/:id/status", group.AuditHandler.UpdateStatus)
				auditGroup.POST("/batch", group.AuditHandler.Batch)
				auditGroup.GET("/:id/history", group.AuditHandler.History)
			}
		}
	}

	return r
}
