package complaints

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type complainantKey struct {
	ct      moderation.ContentType
	content string
	user    string
}

// MemoryRepository is a process-local Store.
type MemoryRepository struct {
	mu     sync.Mutex
	byID   map[primitive.ObjectID]*Complaint
	byUser map[complainantKey]primitive.ObjectID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:   make(map[primitive.ObjectID]*Complaint),
		byUser: make(map[complainantKey]primitive.ObjectID),
	}
}

func (r *MemoryRepository) Insert(ctx context.Context, c *Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := complainantKey{c.ContentType, c.ContentID, c.ComplainantID}
	if existing, ok := r.byUser[key]; ok {
		return &apperrors.DuplicateError{Kind: apperrors.KindComplaint, ExistingID: existing.Hex()}
	}

	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()
	stored := *c
	r.byID[c.ID] = &stored
	r.byUser[key] = c.ID
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.byID[id]; ok {
		delete(r.byUser, complainantKey{c.ContentType, c.ContentID, c.ComplainantID})
		delete(r.byID, id)
	}
	return nil
}

func (r *MemoryRepository) MarkReopened(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	c.ReopenedReview = true
	return nil
}

func (r *MemoryRepository) FindByComplainant(ctx context.Context, ct moderation.ContentType, contentID, userID string) (*Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byUser[complainantKey{ct, contentID, userID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := *r.byID[id]
	return &c, nil
}

func (r *MemoryRepository) ListByContent(ctx context.Context, ct moderation.ContentType, contentID string, page, perPage int) ([]Complaint, int64, error) {
	r.mu.Lock()
	matched := []Complaint{}
	for _, c := range r.byID {
		if c.ContentType == ct && c.ContentID == contentID {
			matched = append(matched, *c)
		}
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	req := pagination.Normalize(page, perPage)
	total := int64(len(matched))
	start := req.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + req.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}
