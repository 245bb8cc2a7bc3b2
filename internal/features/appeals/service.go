package appeals

import (
	"context"
	"fmt"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// OwnerResolver finds the creator entitled to appeal a log.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, log *moderation.Log) (string, error)
}

// LogAuthorResolver trusts the author reported at classification time.
type LogAuthorResolver struct{}

func (LogAuthorResolver) ResolveOwner(ctx context.Context, log *moderation.Log) (string, error) {
	if log.AuthorID == "" {
		return "", apperrors.ErrNotFound
	}
	return log.AuthorID, nil
}

// ModerationLogs is the part of the moderation service appeals need.
type ModerationLogs interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*moderation.Log, error)
	ReopenForAppeal(ctx context.Context, id, appealID primitive.ObjectID) (*moderation.Log, error)
}

type Service struct {
	store  Store
	logs   ModerationLogs
	owners OwnerResolver
	log    *zap.Logger
}

func NewService(store Store, logs ModerationLogs, owners OwnerResolver, log *zap.Logger) *Service {
	if owners == nil {
		owners = LogAuthorResolver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, logs: logs, owners: owners, log: log.Named("appeals")}
}

// FileAppeal lets the content owner contest a rejection or removal. A
// missing log and a foreign log are indistinguishable to the caller.
func (s *Service) FileAppeal(ctx context.Context, in FileAppealInput) (*Appeal, error) {
	if err := ValidateFileAppeal(&in); err != nil {
		return nil, err
	}

	target, err := s.logs.GetByID(ctx, in.ModerationLogID)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	owner, err := s.owners.ResolveOwner(ctx, target)
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrForbidden
	}
	if err != nil {
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	if owner != in.CreatorID {
		s.log.Warn("appeal by non-owner refused",
			zap.String("log_id", target.ID.Hex()),
			zap.String("creator_id", in.CreatorID),
		)
		return nil, apperrors.ErrForbidden
	}

	// An accepted appeal reopens the log, so check for it before eligibility.
	if existing, err := s.store.FindByLog(ctx, target.ID); err == nil {
		return nil, &apperrors.DuplicateError{Kind: apperrors.KindAppeal, ExistingID: existing.ID.Hex()}
	} else if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if !target.Appealable() {
		return nil, fmt.Errorf("%w: log status %s is not appealable", apperrors.ErrInvalidState, target.Status)
	}

	a := &Appeal{
		ModerationLogID: target.ID,
		CreatorID:       in.CreatorID,
		AppealText:      in.AppealText,
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return nil, err
	}

	reopened, err := s.logs.ReopenForAppeal(ctx, target.ID, a.ID)
	if err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), a.ID); delErr != nil {
			s.log.Error("failed to roll back appeal",
				zap.String("appeal_id", a.ID.Hex()),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("reopen log %s: %w", target.ID.Hex(), err)
	}

	appealsTotal.WithLabelValues(string(target.ContentType)).Inc()
	s.log.Info("appeal filed",
		zap.String("appeal_id", a.ID.Hex()),
		zap.String("log_id", target.ID.Hex()),
		zap.String("status", string(reopened.Status)),
		zap.Int("review_cycle", reopened.ReviewCycle),
	)
	return a, nil
}

// GetAppeal returns the appeal filed against a log.
func (s *Service) GetAppeal(ctx context.Context, logID primitive.ObjectID) (*Appeal, error) {
	return s.store.FindByLog(ctx, logID)
}
