package notifications

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the author inbox on an authenticated group.
func RegisterRoutes(router *gin.RouterGroup, service *Service) {
	handler := NewHandler(service)

	notifications := router.Group("/notifications")
	{
		notifications.GET("", handler.ListNotifications)
		notifications.GET("/unread-count", handler.GetUnreadCount)
		notifications.PATCH("/:id/read", handler.MarkAsRead)
		notifications.PATCH("/read-all", handler.MarkAllAsRead)
	}
}
