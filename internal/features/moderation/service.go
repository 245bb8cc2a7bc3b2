package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/moderation/internal/features/classifier"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	defaultClassifyTimeout = 5 * time.Second
	complaintWriteAttempts = 5
)

// Notifier hears about a log after each stored change. before is nil for a
// log seen for the first time.
type Notifier interface {
	LogChanged(ctx context.Context, before, after *Log)
}

type Service struct {
	store      Store
	classifier classifier.Classifier
	policy     *Policy
	timeout    time.Duration
	notifier   Notifier
	log        *zap.Logger
}

func NewService(store Store, clf classifier.Classifier, policy *Policy, timeout time.Duration, log *zap.Logger) *Service {
	if clf == nil {
		clf = classifier.NewKeyword()
	}
	if policy == nil {
		policy = DefaultPolicy()
	}
	if timeout <= 0 {
		timeout = defaultClassifyTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:      store,
		classifier: clf,
		policy:     policy,
		timeout:    timeout,
		log:        log.Named("moderation"),
	}
}

func (s *Service) Policy() *Policy { return s.policy }

// WithNotifier attaches n and returns s.
func (s *Service) WithNotifier(n Notifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) notify(ctx context.Context, before, after *Log) {
	if s.notifier == nil {
		return
	}
	s.notifier.LogChanged(context.WithoutCancel(ctx), before, after)
}

// Moderate classifies a submission and upserts its log. Classifier failure
// or timeout never fails the submission: the log is written as
// needs_review with confidence 0.
func (s *Service) Moderate(ctx context.Context, sub Submission) (*Log, error) {
	if err := ValidateSubmission(sub); err != nil {
		return nil, err
	}

	region := ""
	if sub.RegionID != nil {
		region = *sub.RegionID
	}
	res := s.classify(ctx, classifier.Request{
		ContentType: string(sub.ContentType),
		Title:       sub.Title,
		Body:        sub.Body,
		RegionID:    region,
	})

	var prev *Log
	if s.notifier != nil {
		if existing, err := s.store.GetByContent(ctx, sub.ContentType, sub.ContentID); err == nil {
			prev = existing
		}
	}

	decision := s.policy.Decide(sub.ContentType, res)
	log, err := s.store.UpsertDecision(ctx, sub, decision)
	if err != nil {
		return nil, fmt.Errorf("upsert decision: %w", err)
	}
	s.notify(ctx, prev, log)

	decisionsTotal.WithLabelValues(string(sub.ContentType), string(log.Status)).Inc()
	s.log.Info("content classified",
		zap.String("log_id", log.ID.Hex()),
		zap.String("content_type", string(log.ContentType)),
		zap.String("content_id", log.ContentID),
		zap.String("status", string(log.Status)),
		zap.Float64("confidence", log.Confidence),
		zap.Strings("flags", log.Flags),
		zap.Bool("fallback", res.Unavailable),
	)
	return log, nil
}

// classify bounds the classifier call by s.timeout even if the adapter
// ignores ctx.
func (s *Service) classify(ctx context.Context, req classifier.Request) classifier.Result {
	driver := s.classifier.Name()
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		res classifier.Result
		err error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		res, err := s.classifier.Classify(ctx, req)
		done <- outcome{res, err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		out.err = ctx.Err()
	}

	if out.err != nil {
		classifierDuration.WithLabelValues(driver, "error").Observe(time.Since(start).Seconds())
		classifierFallbacks.WithLabelValues(driver).Inc()
		s.log.Warn("classifier unavailable, queueing for review",
			zap.String("driver", driver),
			zap.String("content_type", req.ContentType),
			zap.Error(out.err),
		)
		return classifier.Unavailable(out.err)
	}
	classifierDuration.WithLabelValues(driver, "ok").Observe(time.Since(start).Seconds())
	return classifier.Sanitize(out.res)
}

// GetStatus returns the log for a content item.
func (s *Service) GetStatus(ctx context.Context, ct ContentType, contentID string) (*Log, error) {
	return s.store.GetByContent(ctx, ct, contentID)
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (*Log, error) {
	return s.store.GetByID(ctx, id)
}

// ListPending returns the review queue, newest first.
func (s *Service) ListPending(ctx context.Context, f PendingFilter, page, perPage int) ([]Log, *pagination.Pagination, error) {
	req := pagination.Normalize(page, perPage)
	logs, total, err := s.store.ListPending(ctx, f, req.Page, req.Limit)
	if err != nil {
		return nil, nil, err
	}
	return logs, pagination.New(req.Page, req.Limit, total), nil
}

// ReceiveFeedback applies a moderator patch. Re-sending the same patch
// leaves the log unchanged apart from updatedAt.
func (s *Service) ReceiveFeedback(ctx context.Context, id primitive.ObjectID, p Patch) (*Log, error) {
	if p.Empty() {
		return nil, apperrors.Invalid("", "feedback must change at least one field")
	}

	before, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log, err := s.store.ApplyPatch(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, before, log)

	feedbackTotal.WithLabelValues(string(log.Status)).Inc()
	fields := []zap.Field{
		zap.String("log_id", id.Hex()),
		zap.String("from", string(before.Status)),
		zap.String("to", string(log.Status)),
	}
	if log.Resolution != nil {
		fields = append(fields, zap.String("resolution", string(*log.Resolution)))
	}
	if log.ResolvedBy != nil {
		fields = append(fields, zap.String("resolved_by", *log.ResolvedBy))
	}
	if !before.Status.CanTransition(log.Status) {
		s.log.Info("moderator override outside automatic lifecycle", fields...)
	} else {
		s.log.Info("feedback applied", fields...)
	}
	return log, nil
}

// RecordComplaint counts a complaint against the log and returns it to
// review unless the content was already removed. The second return value
// reports whether the log was reopened. The count and the reopen are one
// write; a concurrent change to the log makes it re-read and try again.
func (s *Service) RecordComplaint(ctx context.Context, id primitive.ObjectID) (*Log, bool, error) {
	for attempt := 0; attempt < complaintWriteAttempts; attempt++ {
		current, err := s.store.GetByID(ctx, id)
		if err != nil {
			return nil, false, err
		}
		reopen := s.complaintReopen(current)
		log, err := s.store.ApplyComplaint(ctx, current, reopen)
		if errors.Is(err, errStale) {
			continue
		}
		if err != nil {
			return nil, false, err
		}
		if reopen == nil {
			return log, false, nil
		}

		s.notify(ctx, current, log)
		reopenTotal.WithLabelValues("complaint").Inc()
		s.log.Info("log reopened by complaint",
			zap.String("log_id", id.Hex()),
			zap.String("from", string(current.Status)),
			zap.String("to", string(log.Status)),
			zap.Int("review_cycle", log.ReviewCycle),
			zap.Int("complaints", log.ComplaintCount),
		)
		return log, true, nil
	}
	return nil, false, fmt.Errorf("record complaint on %s: %w", id.Hex(), apperrors.ErrConflict)
}

// complaintReopen decides what one more complaint does to current. Nil
// means the complaint is only counted.
func (s *Service) complaintReopen(current *Log) *ReopenParams {
	if current.Removed() {
		return nil
	}
	target := escalate(current.Status, s.policy.EscalationStatus(current.ContentType, current.ComplaintCount+1))
	if target == current.Status && !current.Closed() {
		return nil
	}
	return &ReopenParams{Status: target, NewCycle: startsCycle(current)}
}

// ReopenForAppeal links the appeal and returns the log to needs_review.
func (s *Service) ReopenForAppeal(ctx context.Context, id, appealID primitive.ObjectID) (*Log, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	log, err := s.store.Reopen(ctx, id, ReopenParams{
		Status:   escalate(current.Status, StatusNeedsReview),
		AppealID: &appealID,
		NewCycle: startsCycle(current),
	})
	if err != nil {
		return nil, err
	}
	s.notify(ctx, current, log)
	reopenTotal.WithLabelValues("appeal").Inc()
	s.log.Info("log reopened by appeal",
		zap.String("log_id", id.Hex()),
		zap.String("appeal_id", appealID.Hex()),
		zap.String("status", string(log.Status)),
		zap.Int("review_cycle", log.ReviewCycle),
	)
	return log, nil
}

// startsCycle: a reopen begins a new review cycle unless the current one is
// still open and unresolved.
func startsCycle(current *Log) bool {
	return current.Closed() || !current.Status.Open()
}

// escalate never moves a log down from flagged to needs_review.
func escalate(current, target Status) Status {
	if current == StatusFlagged {
		return StatusFlagged
	}
	return target
}
