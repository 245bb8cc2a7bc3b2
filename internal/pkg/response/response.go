package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xyz-asif/moderation/internal/pkg/logger"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.uber.org/zap"
)

// Machine-readable error codes returned in ErrorResponse.Error
const (
	CodeValidation         = "validation_failed"
	CodeInvalidJSON        = "invalid_json"
	CodeInvalidState       = "invalid_state"
	CodeConflict           = "conflict"
	CodeDuplicateComplaint = "duplicate_complaint"
	CodeDuplicateAppeal    = "duplicate_appeal"
	CodeDuplicate          = "duplicate"
	CodeUnauthorized       = "unauthorized"
	CodeUnauthenticated    = "unauthenticated"
	CodeNotFound           = "not_found"
	CodeRateLimited        = "rate_limited"
	CodeInternal           = "internal_error"
)

// ErrorResponse represents a standard error payload returned by the API
type ErrorResponse struct {
	Error      string `json:"error" example:"duplicate_complaint"`
	Message    string `json:"message" example:"You have already reported this content"`
	Field      string `json:"field,omitempty" example:"reason"`
	ExistingID string `json:"existing_id,omitempty" example:"665f1c2e9b1e8a0012345678"`
}

// SuccessResponse represents a standard success payload
type SuccessResponse struct {
	Status string      `json:"status" example:"success"`
	Data   interface{} `json:"data"`
}

// PaginatedResponse represents a paginated list response
type PaginatedResponse struct {
	Status     string                 `json:"status" example:"success"`
	Data       interface{}            `json:"data"`
	Pagination *pagination.Pagination `json:"pagination"`
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, SuccessResponse{
		Status: "success",
		Data:   data,
	})
}

// Paginated sends a paginated response
func Paginated(c *gin.Context, data interface{}, p *pagination.Pagination) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Status:     "success",
		Data:       data,
		Pagination: p,
	})
}

// Error sends an error response with custom status code, code and message
func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthenticated, message)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeUnauthorized, message)
}

// NotFound sends a 404 Not Found error
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// ValidationError sends a 422 Unprocessable Entity error
func ValidationError(c *gin.Context, field, message string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   CodeValidation,
		Message: message,
		Field:   field,
	})
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}

// BindJSONError handles JSON decode errors in request body
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, CodeInvalidJSON, "Invalid request format")
}

// FromError maps the service error taxonomy onto HTTP responses. Anything
// outside the taxonomy is logged and reported as a 500.
func FromError(c *gin.Context, err error) {
	var dup *apperrors.DuplicateError
	var verr *apperrors.ValidationError

	switch {
	case apperrors.As(err, &dup):
		code := CodeDuplicate
		message := "Resource already exists"
		switch dup.Kind {
		case apperrors.KindComplaint:
			code = CodeDuplicateComplaint
			message = "You have already reported this content"
		case apperrors.KindAppeal:
			code = CodeDuplicateAppeal
			message = "An appeal has already been filed for this decision"
		}
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:      code,
			Message:    message,
			ExistingID: dup.ExistingID,
		})
	case apperrors.As(err, &verr):
		ValidationError(c, verr.Field, verr.Error())
	case apperrors.Is(err, apperrors.ErrValidation):
		ValidationError(c, "", err.Error())
	case apperrors.Is(err, apperrors.ErrInvalidState):
		Error(c, http.StatusUnprocessableEntity, CodeInvalidState, err.Error())
	case apperrors.Is(err, apperrors.ErrConflict):
		Error(c, http.StatusConflict, CodeConflict, "The resource changed while the request was processed, please retry")
	case apperrors.Is(err, apperrors.ErrForbidden):
		Forbidden(c, "You are not allowed to perform this action")
	case apperrors.Is(err, apperrors.ErrNotFound):
		NotFound(c, "Resource not found")
	default:
		logger.Error("unhandled service error",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("method", c.Request.Method),
		)
		InternalServerError(c, "Something went wrong")
	}
}
