package appeals

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FileAppeal godoc
// @Summary Appeal a moderation decision
// @Description Only the content owner may appeal, once per log.
// @Tags appeals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param logId path string true "Moderation log ID"
// @Param request body FileAppealRequest true "Appeal"
// @Success 201 {object} response.SuccessResponse{data=FileAppealResponse}
// @Failure 403 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /moderation/logs/{logId}/appeals [post]
func (h *Handler) FileAppeal(c *gin.Context) {
	logID, err := moderation.LogIDFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req FileAppealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	appeal, err := h.service.FileAppeal(c.Request.Context(), FileAppealInput{
		ModerationLogID: logID,
		CreatorID:       middleware.ActingUser(c),
		AppealText:      req.AppealText,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	id := appeal.ID.Hex()
	response.Created(c, FileAppealResponse{AppealID: id, ComplaintID: id})
}

// GetAppeal godoc
// @Summary Get the appeal filed against a log
// @Tags appeals
// @Produce json
// @Security BearerAuth
// @Param logId path string true "Moderation log ID"
// @Success 200 {object} response.SuccessResponse{data=Appeal}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Router /moderation/logs/{logId}/appeal [get]
func (h *Handler) GetAppeal(c *gin.Context) {
	logID, err := moderation.LogIDFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	appeal, err := h.service.GetAppeal(c.Request.Context(), logID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, appeal)
}
