package notifications

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/response"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListNotifications godoc
// @Summary List my moderation notifications
// @Description Unread first, then newest first
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(20)
// @Param unread_only query bool false "Only unread"
// @Success 200 {object} response.PaginatedResponse{data=[]Notification}
// @Failure 401 {object} response.ErrorResponse
// @Router /notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "", "Invalid query parameters")
		return
	}

	list, p, err := h.service.List(c.Request.Context(), middleware.ActingUser(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, list, p)
}

// GetUnreadCount godoc
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=UnreadCountResponse}
// @Router /notifications/unread-count [get]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	count, err := h.service.UnreadCount(c.Request.Context(), middleware.ActingUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, UnreadCountResponse{UnreadCount: count})
}

// MarkAsRead godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path string true "Notification ID"
// @Success 200 {object} response.SuccessResponse{data=MarkReadResponse}
// @Failure 404 {object} response.ErrorResponse
// @Router /notifications/{id}/read [patch]
func (h *Handler) MarkAsRead(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.FromError(c, apperrors.Invalid("id", "invalid notification id"))
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, middleware.ActingUser(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, MarkReadResponse{ID: id, IsRead: true})
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.SuccessResponse{data=MarkAllReadResponse}
// @Router /notifications/read-all [patch]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	count, err := h.service.MarkAllRead(c.Request.Context(), middleware.ActingUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, MarkAllReadResponse{MarkedCount: count})
}
