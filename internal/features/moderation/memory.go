package moderation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contentKey struct {
	ct ContentType
	id string
}

// MemoryRepository is a process-local Store for tests and STORE_DRIVER=memory.
type MemoryRepository struct {
	mu        sync.Mutex
	logs      map[primitive.ObjectID]*Log
	byContent map[contentKey]primitive.ObjectID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		logs:      make(map[primitive.ObjectID]*Log),
		byContent: make(map[contentKey]primitive.ObjectID),
	}
}

func (r *MemoryRepository) UpsertDecision(ctx context.Context, sub Submission, d Decision) (*Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	key := contentKey{sub.ContentType, sub.ContentID}
	log, ok := r.logsByKey(key)
	if !ok {
		log = &Log{
			ID:          primitive.NewObjectID(),
			ContentType: sub.ContentType,
			ContentID:   sub.ContentID,
			CreatedAt:   now,
		}
		r.logs[log.ID] = log
		r.byContent[key] = log.ID
	}

	log.Status = d.Status
	log.Confidence = d.Confidence
	log.Flags = cloneStrings(d.Flags)
	log.Suggestions = cloneStrings(d.Suggestions)
	log.Rationale = d.Rationale
	if sub.AuthorID != "" {
		log.AuthorID = sub.AuthorID
	}
	if sub.RegionID != nil {
		region := *sub.RegionID
		log.RegionID = &region
	}
	log.UpdatedAt = now
	return cloneLog(log), nil
}

func (r *MemoryRepository) logsByKey(key contentKey) (*Log, bool) {
	id, ok := r.byContent[key]
	if !ok {
		return nil, false
	}
	return r.logs[id], true
}

func (r *MemoryRepository) GetByContent(ctx context.Context, ct ContentType, contentID string) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logsByKey(contentKey{ct, contentID})
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneLog(log), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return cloneLog(log), nil
}

func (r *MemoryRepository) ApplyPatch(ctx context.Context, id primitive.ObjectID, p Patch) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if p.Status != nil {
		log.Status = *p.Status
	}
	if p.Confidence != nil {
		log.Confidence = *p.Confidence
	}
	if p.Flags != nil {
		log.Flags = cloneStrings(*p.Flags)
	}
	if p.Suggestions != nil {
		log.Suggestions = cloneStrings(*p.Suggestions)
	}
	if p.Notes != nil {
		log.Notes = *p.Notes
	}
	if p.Resolution != nil {
		res := *p.Resolution
		log.Resolution = &res
		log.ResolvedCycle = log.ReviewCycle
	}
	if p.ResolvedBy != nil {
		by := *p.ResolvedBy
		log.ResolvedBy = &by
	}
	log.UpdatedAt = time.Now().UTC()
	return cloneLog(log), nil
}

func (r *MemoryRepository) ListPending(ctx context.Context, f PendingFilter, page, perPage int) ([]Log, int64, error) {
	r.mu.Lock()
	matched := make([]*Log, 0)
	for _, log := range r.logs {
		if !log.Status.Open() {
			continue
		}
		if f.ContentType != nil && log.ContentType != *f.ContentType {
			continue
		}
		if f.RegionID != nil && (log.RegionID == nil || *log.RegionID != *f.RegionID) {
			continue
		}
		matched = append(matched, cloneLog(log))
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
	out := []Log{}
	for i := req.Offset(); i < len(matched) && len(out) < req.Limit; i++ {
		out = append(out, *matched[i])
	}
	return out, total, nil
}

func (r *MemoryRepository) Reopen(ctx context.Context, id primitive.ObjectID, p ReopenParams) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	log.Status = p.Status
	if p.AppealID != nil {
		appealID := *p.AppealID
		log.AppealID = &appealID
	}
	if p.NewCycle {
		log.ReviewCycle++
	}
	log.UpdatedAt = time.Now().UTC()
	return cloneLog(log), nil
}

func (r *MemoryRepository) ApplyComplaint(ctx context.Context, current *Log, reopen *ReopenParams) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log, ok := r.logs[current.ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if !sameRevision(log, current) {
		return nil, errStale
	}
	log.ComplaintCount++
	if reopen != nil {
		log.Status = reopen.Status
		if reopen.AppealID != nil {
			appealID := *reopen.AppealID
			log.AppealID = &appealID
		}
		if reopen.NewCycle {
			log.ReviewCycle++
		}
	}
	log.UpdatedAt = time.Now().UTC()
	return cloneLog(log), nil
}

func sameRevision(a, b *Log) bool {
	sameResolution := (a.Resolution == nil) == (b.Resolution == nil) &&
		(a.Resolution == nil || *a.Resolution == *b.Resolution)
	return sameResolution &&
		a.Status == b.Status &&
		a.ReviewCycle == b.ReviewCycle &&
		a.ComplaintCount == b.ComplaintCount &&
		a.UpdatedAt.Equal(b.UpdatedAt)
}

func cloneLog(l *Log) *Log {
	out := *l
	out.Flags = cloneStrings(l.Flags)
	out.Suggestions = cloneStrings(l.Suggestions)
	if l.RegionID != nil {
		v := *l.RegionID
		out.RegionID = &v
	}
	if l.Resolution != nil {
		v := *l.Resolution
		out.Resolution = &v
	}
	if l.ResolvedBy != nil {
		v := *l.ResolvedBy
		out.ResolvedBy = &v
	}
	if l.AppealID != nil {
		v := *l.AppealID
		out.AppealID = &v
	}
	return &out
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
