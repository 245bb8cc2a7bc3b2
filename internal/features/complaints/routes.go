package complaints

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
	"github.com/xyz-asif/moderation/internal/pkg/ratelimit"
)

// RegisterRoutes mounts complaint endpoints on an authenticated group.
// limiter may be nil to disable per-user throttling.
func RegisterRoutes(router *gin.RouterGroup, service *Service, limiter *ratelimit.RateLimiter) {
	handler := NewHandler(service)

	fileChain := []gin.HandlerFunc{}
	if limiter != nil {
		fileChain = append(fileChain, ratelimit.UserBasedMiddleware(limiter))
	}
	fileChain = append(fileChain, handler.FileComplaint)

	item := router.Group("/moderation/:" + moderation.ParamRef + "/:" + moderation.ParamContentID + "/complaints")
	{
		item.POST("", fileChain...)
		item.GET("/status", handler.ComplaintStatus)
		item.GET("", middleware.RequireRole(jwt.RoleModerator), handler.ListComplaints)
	}
}
