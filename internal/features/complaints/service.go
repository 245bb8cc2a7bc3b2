package complaints

import (
	"context"
	"fmt"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/cachestore"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const statusCacheName = "complaint_status"

// ModerationLogs is the part of the moderation service complaints need.
type ModerationLogs interface {
	GetStatus(ctx context.Context, ct moderation.ContentType, contentID string) (*moderation.Log, error)
	RecordComplaint(ctx context.Context, id primitive.ObjectID) (*moderation.Log, bool, error)
}

type Service struct {
	store Store
	logs  ModerationLogs
	cache cachestore.CacheStore
	log   *zap.Logger
}

func NewService(store Store, logs ModerationLogs, cache cachestore.CacheStore, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, logs: logs, cache: cache, log: log.Named("complaints")}
}

// FileComplaint records a reader's report and returns the affected log to
// review. Content that was never classified cannot be reported.
func (s *Service) FileComplaint(ctx context.Context, in FileComplaintInput) (*Complaint, error) {
	if err := ValidateFileComplaint(&in); err != nil {
		return nil, err
	}

	target, err := s.logs.GetStatus(ctx, in.ContentType, in.ContentID)
	if err != nil {
		return nil, err
	}

	c := &Complaint{
		ContentType:     in.ContentType,
		ContentID:       in.ContentID,
		ComplainantID:   in.UserID,
		Reason:          in.Reason,
		FreeText:        in.FreeText,
		ModerationLogID: target.ID,
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, err
	}

	updated, reopened, err := s.logs.RecordComplaint(ctx, target.ID)
	if err != nil {
		// Undo the insert so the reader can retry.
		if delErr := s.store.Delete(context.WithoutCancel(ctx), c.ID); delErr != nil {
			s.log.Error("failed to roll back complaint",
				zap.String("complaint_id", c.ID.Hex()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("record complaint on log %s: %w", target.ID.Hex(), err)
	}

	if reopened {
		c.ReopenedReview = true
		if err := s.store.MarkReopened(ctx, c.ID); err != nil {
			s.log.Warn("failed to mark complaint as reopening review",
				zap.String("complaint_id", c.ID.Hex()),
				zap.Error(err),
			)
		}
	}

	s.cacheStatus(ctx, in.ContentType, in.ContentID, in.UserID, c.ID.Hex())
	complaintsTotal.WithLabelValues(string(in.ContentType), string(in.Reason)).Inc()
	s.log.Info("complaint filed",
		zap.String("complaint_id", c.ID.Hex()),
		zap.String("log_id", target.ID.Hex()),
		zap.String("content_type", string(in.ContentType)),
		zap.String("content_id", in.ContentID),
		zap.String("reason", string(in.Reason)),
		zap.Bool("reopened", reopened),
		zap.String("status", string(updated.Status)),
	)
	return c, nil
}

// ComplaintStatus reports whether userID has already reported the item.
func (s *Service) ComplaintStatus(ctx context.Context, ct moderation.ContentType, contentID, userID string) (StatusResponse, error) {
	key := statusKey(ct, contentID, userID)
	if s.cache != nil {
		if id, err := s.cache.Get(ctx, statusCacheName, key); err == nil && id != "" {
			return StatusResponse{HasComplained: true, ComplaintID: &id}, nil
		} else if err != nil {
			s.log.Warn("complaint status cache read failed", zap.Error(err))
		}
	}

	c, err := s.store.FindByComplainant(ctx, ct, contentID, userID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return StatusResponse{HasComplained: false}, nil
	}
	if err != nil {
		return StatusResponse{}, err
	}

	id := c.ID.Hex()
	s.cacheStatus(ctx, ct, contentID, userID, id)
	return StatusResponse{HasComplained: true, ComplaintID: &id}, nil
}

// ListComplaints pages through the reports against one item.
func (s *Service) ListComplaints(ctx context.Context, ct moderation.ContentType, contentID string, page, perPage int) ([]Complaint, *pagination.Pagination, error) {
	req := pagination.Normalize(page, perPage)
	list, total, err := s.store.ListByContent(ctx, ct, contentID, req.Page, req.Limit)
	if err != nil {
		return nil, nil, err
	}
	return list, pagination.New(req.Page, req.Limit, total), nil
}

// Only positive answers are cached: a complaint is never withdrawn.
func (s *Service) cacheStatus(ctx context.Context, ct moderation.ContentType, contentID, userID, complaintID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, statusCacheName, statusKey(ct, contentID, userID), complaintID); err != nil {
		s.log.Warn("complaint status cache write failed", zap.Error(err))
	}
}

func statusKey(ct moderation.ContentType, contentID, userID string) string {
	return string(ct) + "/" + contentID + "/" + userID
}
