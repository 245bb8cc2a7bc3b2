package complaints

import (
	"time"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reason is the category a reader picks when reporting content.
type Reason string

const (
	ReasonSpam           Reason = "spam"
	ReasonHarassment     Reason = "harassment"
	ReasonHateSpeech     Reason = "hate_speech"
	ReasonViolence       Reason = "violence"
	ReasonSexualContent  Reason = "sexual_content"
	ReasonMisinformation Reason = "misinformation"
	ReasonScam           Reason = "scam"
	ReasonIllegalContent Reason = "illegal_content"
	ReasonCopyright      Reason = "copyright"
	ReasonPrivacy        Reason = "privacy"
	ReasonOther          Reason = "other"
)

var reasons = []Reason{
	ReasonSpam, ReasonHarassment, ReasonHateSpeech, ReasonViolence, ReasonSexualContent,
	ReasonMisinformation, ReasonScam, ReasonIllegalContent, ReasonCopyright, ReasonPrivacy, ReasonOther,
}

func (r Reason) Valid() bool {
	return validator.OneOf(r, reasons...)
}

// Complaint is one reader's report against one content item. A reader can
// report a given item once.
type Complaint struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	ContentType     moderation.ContentType `bson:"contentType" json:"content_type"`
	ContentID       string                 `bson:"contentId" json:"content_id"`
	ComplainantID   string                 `bson:"complainantId" json:"complainant_id"`
	Reason          Reason                 `bson:"reason" json:"reason"`
	FreeText        string                 `bson:"freeText,omitempty" json:"complaint_text,omitempty"`
	ModerationLogID primitive.ObjectID     `bson:"moderationLogId" json:"moderation_log_id"`
	ReopenedReview  bool                   `bson:"reopenedReview" json:"reopened_review"`
	CreatedAt       time.Time              `bson:"createdAt" json:"created_at"`
}

// FileComplaintInput is the service-level request.
type FileComplaintInput struct {
	ContentType moderation.ContentType
	ContentID   string
	UserID      string
	Reason      Reason
	FreeText    string
}

// FileComplaintRequest for POST /moderation/:contentType/:contentId/complaints
type FileComplaintRequest struct {
	Reason        string `json:"reason" binding:"required" example:"spam"`
	ComplaintText string `json:"complaint_text" example:"Same ad posted ten times today"`
}

// FileComplaintResponse is returned with 201.
type FileComplaintResponse struct {
	ComplaintID string `json:"complaint_id" example:"665f1c2e9b1e8a0012345678"`
}

// StatusResponse reports whether the acting user already complained.
type StatusResponse struct {
	HasComplained bool    `json:"has_complained"`
	ComplaintID   *string `json:"complaint_id,omitempty"`
}
