package appeals

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Appeal is a creator's request to reconsider a moderation decision. A log
// carries at most one appeal.
type Appeal struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ModerationLogID primitive.ObjectID `bson:"moderationLogId" json:"moderation_log_id"`
	CreatorID       string             `bson:"creatorId" json:"creator_id"`
	AppealText      string             `bson:"appealText" json:"appeal_text"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
}

// FileAppealInput is the service-level request.
type FileAppealInput struct {
	ModerationLogID primitive.ObjectID
	CreatorID       string
	AppealText      string
}

// FileAppealRequest for POST /moderation/logs/:logId/appeals
type FileAppealRequest struct {
	AppealText string `json:"appeal_text" binding:"required" example:"The event was approved by the council, see the attached permit."`
}

// FileAppealResponse is returned with 201. complaint_id carries the appeal
// id for clients written against the complaint response shape.
type FileAppealResponse struct {
	AppealID    string `json:"appeal_id" example:"665f1c2e9b1e8a0012345678"`
	ComplaintID string `json:"complaint_id" example:"665f1c2e9b1e8a0012345678"`
}
