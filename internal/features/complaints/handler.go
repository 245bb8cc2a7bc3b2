package complaints

import (
	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	"github.com/xyz-asif/moderation/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// FileComplaint godoc
// @Summary Report content
// @Description File a complaint against a content item. One complaint per user per item.
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param contentType path string true "Content type"
// @Param contentId path string true "Content ID"
// @Param request body FileComplaintRequest true "Complaint"
// @Success 201 {object} response.SuccessResponse{data=FileComplaintResponse}
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /moderation/{contentType}/{contentId}/complaints [post]
func (h *Handler) FileComplaint(c *gin.Context) {
	ct, contentID, err := moderation.ContentKeyFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req FileComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	complaint, err := h.service.FileComplaint(c.Request.Context(), FileComplaintInput{
		ContentType: ct,
		ContentID:   contentID,
		UserID:      middleware.ActingUser(c),
		Reason:      Reason(req.Reason),
		FreeText:    req.ComplaintText,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, FileComplaintResponse{ComplaintID: complaint.ID.Hex()})
}

// ComplaintStatus godoc
// @Summary Has the current user reported this content
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param contentType path string true "Content type"
// @Param contentId path string true "Content ID"
// @Success 200 {object} response.SuccessResponse{data=StatusResponse}
// @Failure 422 {object} response.ErrorResponse
// @Router /moderation/{contentType}/{contentId}/complaints/status [get]
func (h *Handler) ComplaintStatus(c *gin.Context) {
	ct, contentID, err := moderation.ContentKeyFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	status, err := h.service.ComplaintStatus(c.Request.Context(), ct, contentID, middleware.ActingUser(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, status)
}

// ListComplaints godoc
// @Summary List complaints against a content item
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param contentType path string true "Content type"
// @Param contentId path string true "Content ID"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(20)
// @Success 200 {object} response.PaginatedResponse{data=[]Complaint}
// @Failure 403 {object} response.ErrorResponse
// @Router /moderation/{contentType}/{contentId}/complaints [get]
func (h *Handler) ListComplaints(c *gin.Context) {
	ct, contentID, err := moderation.ContentKeyFromPath(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	req := pagination.FromRequest(c.Query("page"), c.Query("per_page"))

	list, p, err := h.service.ListComplaints(c.Request.Context(), ct, contentID, req.Page, req.Limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Paginated(c, list, p)
}
