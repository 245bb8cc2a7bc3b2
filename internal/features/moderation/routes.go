package moderation

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
)

// RegisterRoutes mounts the moderation endpoints on a group that already runs
// middleware.Auth.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)

	moderators := middleware.RequireRole(jwt.RoleModerator)
	publishers := middleware.RequireRole(jwt.RoleService, jwt.RoleModerator)

	mod := router.Group("/moderation")
	{
		mod.GET("/pending", moderators, handler.ListPending)
		mod.GET("/logs/:"+ParamLogID, moderators, handler.GetLog)
		mod.POST("/:"+ParamRef+"/feedback", moderators, handler.Feedback)
		mod.POST("/:"+ParamRef+"/:"+ParamContentID+"/classify", publishers, handler.Classify)
		mod.GET("/:"+ParamRef+"/:"+ParamContentID, handler.GetStatus)
	}
}
