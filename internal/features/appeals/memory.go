package appeals

import (
	"context"
	"sync"
	"time"

	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is a process-local Store.
type MemoryRepository struct {
	mu    sync.Mutex
	byLog map[primitive.ObjectID]Appeal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byLog: make(map[primitive.ObjectID]Appeal)}
}

func (r *MemoryRepository) Insert(ctx context.Context, a *Appeal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.byLog[a.ModerationLogID]; ok {
		return &apperrors.DuplicateError{Kind: apperrors.KindAppeal, ExistingID: existing.ID.Hex()}
	}
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()
	r.byLog[a.ModerationLogID] = *a
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for logID, a := range r.byLog {
		if a.ID == id {
			delete(r.byLog, logID)
		}
	}
	return nil
}

func (r *MemoryRepository) FindByLog(ctx context.Context, logID primitive.ObjectID) (*Appeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byLog[logID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &a, nil
}
