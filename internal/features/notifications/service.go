package notifications

import (
	"context"
	"fmt"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log.Named("notifications")}
}

// LogChanged records a notice for the author when a change is worth telling
// them about. Failures are logged and never reach the caller.
func (s *Service) LogChanged(ctx context.Context, before, after *moderation.Log) {
	n := noticeFor(before, after)
	if n == nil {
		return
	}
	if err := s.store.Create(ctx, n); err != nil {
		s.log.Warn("failed to store notification",
			zap.String("log_id", after.ID.Hex()),
			zap.String("type", n.Type),
			zap.Error(err),
		)
		return
	}
	notificationsTotal.WithLabelValues(n.Type).Inc()
}

func noticeFor(before, after *moderation.Log) *Notification {
	if after == nil || after.AuthorID == "" {
		return nil
	}
	n := &Notification{
		RecipientID:     after.AuthorID,
		ContentType:     after.ContentType,
		ContentID:       after.ContentID,
		ModerationLogID: after.ID,
		Status:          after.Status,
	}
	statusChanged := before == nil || before.Status != after.Status

	switch {
	case resolutionChanged(before, after):
		n.Type = TypeResolution
		res := *after.CurrentResolution()
		n.Resolution = &res
		n.Preview = fmt.Sprintf("Your %s was %s by a moderator", after.ContentType, res)
	case reopened(before, after):
		n.Type = TypeReopened
		n.Preview = fmt.Sprintf("Your %s is being reviewed again", after.ContentType)
	case statusChanged && after.Status == moderation.StatusRejected:
		n.Type = TypeRejected
		n.Preview = fmt.Sprintf("Your %s was rejected", after.ContentType)
	case statusChanged && after.Status == moderation.StatusFlagged:
		n.Type = TypeFlagged
		n.Preview = fmt.Sprintf("Your %s was flagged for review", after.ContentType)
	default:
		return nil
	}
	return n
}

// resolutionChanged compares resolutions of the current cycle, so resolving
// a reopened log again is news even when the value repeats.
func resolutionChanged(before, after *moderation.Log) bool {
	cur := after.CurrentResolution()
	if cur == nil {
		return false
	}
	if before == nil || before.CurrentResolution() == nil {
		return true
	}
	return *before.CurrentResolution() != *cur
}

func reopened(before, after *moderation.Log) bool {
	if before == nil || !after.Status.Open() {
		return false
	}
	return !before.Status.Open() || (before.Closed() && !after.Closed())
}

func (s *Service) List(ctx context.Context, recipientID string, q ListQuery) ([]Notification, *pagination.Pagination, error) {
	req := pagination.Normalize(q.Page, q.PerPage)
	list, total, err := s.store.ListByRecipient(ctx, recipientID, q.UnreadOnly, req.Page, req.Limit)
	if err != nil {
		return nil, nil, err
	}
	return list, pagination.New(req.Page, req.Limit, total), nil
}

func (s *Service) UnreadCount(ctx context.Context, recipientID string) (int64, error) {
	return s.store.CountUnread(ctx, recipientID)
}

func (s *Service) MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error {
	return s.store.MarkRead(ctx, id, recipientID)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	return s.store.MarkAllRead(ctx, recipientID)
}
