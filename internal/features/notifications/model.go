package notifications

import (
	"time"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification type constants
const (
	TypeRejected   = "decision_rejected"
	TypeFlagged    = "decision_flagged"
	TypeResolution = "resolution"
	TypeReopened   = "review_reopened"
)

// Notification tells a content author that a moderation decision about
// their content changed.
type Notification struct {
	ID              primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	RecipientID     string                 `bson:"recipientId" json:"recipient_id"`
	Type            string                 `bson:"type" json:"type"`
	ContentType     moderation.ContentType `bson:"contentType" json:"content_type"`
	ContentID       string                 `bson:"contentId" json:"content_id"`
	ModerationLogID primitive.ObjectID     `bson:"moderationLogId" json:"moderation_log_id"`
	Status          moderation.Status      `bson:"status" json:"status"`
	Resolution      *moderation.Resolution `bson:"resolution,omitempty" json:"resolution,omitempty"`
	Preview         string                 `bson:"preview" json:"preview"`
	IsRead          bool                   `bson:"isRead" json:"is_read"`
	CreatedAt       time.Time              `bson:"createdAt" json:"created_at"`
}

type ListQuery struct {
	Page       int  `form:"page,default=1"`
	PerPage    int  `form:"per_page,default=20"`
	UnreadOnly bool `form:"unread_only"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type MarkReadResponse struct {
	ID     primitive.ObjectID `json:"id"`
	IsRead bool               `json:"is_read"`
}

type MarkAllReadResponse struct {
	MarkedCount int64 `json:"marked_count"`
}
