package moderation

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType identifies the kind of content a log belongs to.
type ContentType string

const (
	ContentArticle      ContentType = "article"
	ContentEvent        ContentType = "event"
	ContentAd           ContentType = "ad"
	ContentAnnouncement ContentType = "announcement"
	ContentCoupon       ContentType = "coupon"
	ContentClassified   ContentType = "classified"
	ContentLegalNotice  ContentType = "legal_notice"
	ContentComment      ContentType = "comment"
	ContentReview       ContentType = "review"
	ContentListing      ContentType = "listing"
)

var contentTypes = []ContentType{
	ContentArticle, ContentEvent, ContentAd, ContentAnnouncement, ContentCoupon,
	ContentClassified, ContentLegalNotice, ContentComment, ContentReview, ContentListing,
}

// ContentTypes lists every accepted content type.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

func (t ContentType) Valid() bool {
	for _, ct := range contentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// Status is the moderation decision for a content item.
type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusNeedsReview Status = "needs_review"
	StatusFlagged     Status = "flagged"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusNeedsReview, StatusFlagged:
		return true
	}
	return false
}

// Open reports whether a log with this status waits for a moderator.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusNeedsReview || s == StatusFlagged
}

// OpenStatuses are the statuses surfaced by the pending queue.
var OpenStatuses = []Status{StatusPending, StatusNeedsReview, StatusFlagged}

// CanTransition describes the automatic lifecycle. Moderator feedback is an
// override and is not bound by it.
func (s Status) CanTransition(to Status) bool {
	if s == to {
		return true
	}
	switch s {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected || to == StatusNeedsReview || to == StatusFlagged
	case StatusApproved, StatusRejected:
		return to == StatusNeedsReview || to == StatusFlagged
	case StatusNeedsReview:
		return to == StatusApproved || to == StatusRejected || to == StatusFlagged
	case StatusFlagged:
		return to == StatusApproved || to == StatusRejected || to == StatusNeedsReview
	}
	return false
}

// Resolution is the terminal human disposition of a review cycle.
type Resolution string

const (
	ResolutionPublished Resolution = "published"
	ResolutionEdited    Resolution = "edited"
	ResolutionRemoved   Resolution = "removed"
	ResolutionEscalated Resolution = "escalated"
)

func (r Resolution) Valid() bool {
	switch r {
	case ResolutionPublished, ResolutionEdited, ResolutionRemoved, ResolutionEscalated:
		return true
	}
	return false
}

// RejectionStyle reports whether the creator lost visibility or control of
// the content as a result of the resolution.
func (r Resolution) RejectionStyle() bool {
	return r == ResolutionRemoved || r == ResolutionEdited
}

// Log is the single authoritative decision record for one content item.
type Log struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ContentType ContentType        `bson:"contentType" json:"content_type"`
	ContentID   string             `bson:"contentId" json:"content_id"`
	RegionID    *string            `bson:"regionId,omitempty" json:"region_id,omitempty"`
	AuthorID    string             `bson:"authorId,omitempty" json:"author_id,omitempty"`

	Status      Status   `bson:"status" json:"status"`
	Confidence  float64  `bson:"confidence" json:"confidence"`
	Flags       []string `bson:"flags" json:"flags"`
	Suggestions []string `bson:"suggestions" json:"suggestions"`
	Rationale   string   `bson:"rationale" json:"rationale"`

	Resolution *Resolution `bson:"resolution" json:"resolution"`
	ResolvedBy *string     `bson:"resolvedBy" json:"resolved_by"`
	Notes      string      `bson:"notes" json:"notes"`
	// ResolvedCycle is the ReviewCycle the resolution was given in.
	ResolvedCycle int `bson:"resolvedCycle" json:"resolved_cycle"`

	ReviewCycle    int                 `bson:"reviewCycle" json:"review_cycle"`
	ComplaintCount int                 `bson:"complaintCount" json:"complaint_count"`
	AppealID       *primitive.ObjectID `bson:"appealId,omitempty" json:"appeal_id,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updated_at"`
}

// CurrentResolution returns the resolution of the current review cycle, or
// nil when the log was reopened after its last resolution.
func (l *Log) CurrentResolution() *Resolution {
	if l.Resolution == nil || l.ResolvedCycle != l.ReviewCycle {
		return nil
	}
	return l.Resolution
}

// Closed reports whether a moderator has resolved the current cycle.
func (l *Log) Closed() bool {
	return l.CurrentResolution() != nil
}

// Removed reports whether the content is currently taken down.
func (l *Log) Removed() bool {
	res := l.CurrentResolution()
	return res != nil && *res == ResolutionRemoved
}

// Appealable: an unresolved rejection or flag, or a rejection-style resolution
// of the current cycle.
func (l *Log) Appealable() bool {
	if res := l.CurrentResolution(); res != nil {
		return res.RejectionStyle()
	}
	return l.Status == StatusRejected || l.Status == StatusFlagged
}

// Decision holds the fields written by classification.
type Decision struct {
	Status      Status
	Confidence  float64
	Flags       []string
	Suggestions []string
	Rationale   string
}

// Patch is a partial update from a moderator. Nil fields are left unchanged.
type Patch struct {
	Status      *Status
	Confidence  *float64
	Flags       *[]string
	Suggestions *[]string
	Notes       *string
	Resolution  *Resolution
	ResolvedBy  *string
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Status == nil && p.Confidence == nil && p.Flags == nil && p.Suggestions == nil &&
		p.Notes == nil && p.Resolution == nil && p.ResolvedBy == nil
}

// PendingFilter narrows the review queue.
type PendingFilter struct {
	ContentType *ContentType
	RegionID    *string
}

// ReopenParams describes a complaint- or appeal-driven return to review.
type ReopenParams struct {
	Status   Status
	AppealID *primitive.ObjectID
	// NewCycle increments ReviewCycle; false when the log was already open.
	NewCycle bool
}

// Submission is what the publishing pipeline sends for classification.
type Submission struct {
	ContentType ContentType
	ContentID   string
	AuthorID    string
	RegionID    *string
	Title       string
	Body        string
}

// ClassifyRequest for POST /moderation/:contentType/:contentId/classify
type ClassifyRequest struct {
	AuthorID string  `json:"author_id" binding:"required"`
	RegionID *string `json:"region_id"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
}

// FeedbackRequest for POST /moderation/:logId/feedback
type FeedbackRequest struct {
	Status      *string   `json:"status"`
	Confidence  *float64  `json:"confidence"`
	Flags       *[]string `json:"flags"`
	Suggestions *[]string `json:"suggestions"`
	Notes       *string   `json:"notes"`
	Resolution  *string   `json:"resolution"`
	ResolvedBy  *string   `json:"resolved_by"`
}

// PendingQuery for GET /moderation/pending
type PendingQuery struct {
	ContentType string `form:"content_type"`
	RegionID    string `form:"region_id"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
