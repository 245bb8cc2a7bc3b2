package moderation

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/response"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Path parameters. Gin allows one wildcard name per position, so the segment
// after /moderation is ParamRef whether it holds a content type or a log id.
const (
	ParamRef       = "ref"
	ParamContentID = "contentId"
	ParamLogID     = "logId"
)

// ContentKeyFromPath reads /moderation/:ref/:contentId.
func ContentKeyFromPath(c *gin.Context) (ContentType, string, error) {
	return ParseContentKey(c.Param(ParamRef), c.Param(ParamContentID))
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Classify godoc
// @Summary Classify content
// @Description Runs the classifier and writes the moderation decision. Classifier failure yields needs_review, never an error.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentType path string true "Content type"
// @Param contentId path string true "Content ID"
// @Param request body ClassifyRequest true "Content to classify"
// @Success 200 {object} response.SuccessResponse{data=Log}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /moderation/{contentType}/{contentId}/classify [post]
func (h *Handler) Classify(c *gin.Context) {
	ct, contentID, err := ContentKeyFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	log, err := h.service.Moderate(c.Request.Context(), Submission{
		ContentType: ct,
		ContentID:   contentID,
		AuthorID:    strings.TrimSpace(req.AuthorID),
		RegionID:    req.RegionID,
		Title:       req.Title,
		Body:        req.Body,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, log)
}

// GetStatus godoc
// @Summary Get moderation status
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param contentType path string true "Content type"
// @Param contentId path string true "Content ID"
// @Success 200 {object} response.SuccessResponse{data=Log}
// @Failure 404 {object} response.ErrorResponse
// @Router /moderation/{contentType}/{contentId} [get]
func (h *Handler) GetStatus(c *gin.Context) {
	ct, contentID, err := ContentKeyFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	log, err := h.service.GetStatus(c.Request.Context(), ct, contentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, log)
}

// Feedback godoc
// @Summary Record moderator feedback
// @Description Applies a partial update. Only fields present in the body change.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param logId path string true "Moderation log ID"
// @Param request body FeedbackRequest true "Fields to change"
// @Success 200 {object} response.SuccessResponse{data=Log}
// @Failure 403 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Router /moderation/{logId}/feedback [post]
func (h *Handler) Feedback(c *gin.Context) {
	id, err := ParseLogID(c.Param(ParamRef))
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	patch, err := req.ToPatch(middleware.ActingUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}

	log, err := h.service.ReceiveFeedback(c.Request.Context(), id, patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, log)
}

// ListPending godoc
// @Summary List the review queue
// @Description Open logs (pending, needs_review, flagged), newest first.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param content_type query string false "Filter by content type"
// @Param region_id query string false "Filter by region"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Log}
// @Failure 403 {object} response.ErrorResponse
// @Router /moderation/pending [get]
func (h *Handler) ListPending(c *gin.Context) {
	var q PendingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ValidationError(c, "", "Invalid query parameters")
		return
	}

	var f PendingFilter
	if q.ContentType != "" {
		ct := ContentType(strings.ToLower(q.ContentType))
		if !ct.Valid() {
			response.ValidationError(c, "content_type", "unknown content type")
			return
		}
		f.ContentType = &ct
	}
	if q.RegionID != "" {
		region := q.RegionID
		f.RegionID = &region
	}

	logs, p, err := h.service.ListPending(c.Request.Context(), f, q.Page, q.PerPage)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, logs, p)
}

// GetLog godoc
// @Summary Get a moderation log by ID
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param logId path string true "Moderation log ID"
// @Success 200 {object} response.SuccessResponse{data=Log}
// @Failure 404 {object} response.ErrorResponse
// @Router /moderation/logs/{logId} [get]
func (h *Handler) GetLog(c *gin.Context) {
	id, err := ParseLogID(c.Param(ParamLogID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	log, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, log)
}

// LogIDFromPath reads /moderation/logs/:logId.
func LogIDFromPath(c *gin.Context) (primitive.ObjectID, error) {
	return ParseLogID(c.Param(ParamLogID))
}
