package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is a process-local Store for tests and STORE_DRIVER=memory.
type MemoryRepository struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]*Notification
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[primitive.ObjectID]*Notification)}
}

func (r *MemoryRepository) Create(ctx context.Context, n *Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()
	n.IsRead = false
	stored := *n
	r.items[n.ID] = &stored
	return nil
}

func (r *MemoryRepository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, perPage int) ([]Notification, int64, error) {
	r.mu.Lock()
	matched := make([]Notification, 0)
	for _, n := range r.items {
		if n.RecipientID != recipientID || (unreadOnly && n.IsRead) {
			continue
		}
		matched = append(matched, *n)
	}
	r.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].IsRead != matched[j].IsRead {
			return !matched[i].IsRead
		}
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})

	total := int64(len(matched))
	req := pagination.Normalize(page, perPage)
	offset := req.Offset()
	if offset >= len(matched) {
		return []Notification{}, total, nil
	}
	end := offset + req.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *MemoryRepository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *MemoryRepository) MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.RecipientID != recipientID {
		return apperrors.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (r *MemoryRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var marked int64
	for _, n := range r.items {
		if n.RecipientID == recipientID && !n.IsRead {
			n.IsRead = true
			marked++
		}
	}
	return marked, nil
}
