package appeals

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
)

// RegisterRoutes mounts appeal endpoints on an authenticated group.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)

	logs := router.Group("/moderation/logs/:" + moderation.ParamLogID)
	{
		logs.POST("/appeals", handler.FileAppeal)
		logs.GET("/appeal", middleware.RequireRole(jwt.RoleModerator), handler.GetAppeal)
	}
}
