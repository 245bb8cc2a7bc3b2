package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists moderation logs. There is at most one log per
// (content type, content id); writers race on that key safely.
type Store interface {
	UpsertDecision(ctx context.Context, sub Submission, d Decision) (*Log, error)
	GetByContent(ctx context.Context, ct ContentType, contentID string) (*Log, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Log, error)
	ApplyPatch(ctx context.Context, id primitive.ObjectID, p Patch) (*Log, error)
	ListPending(ctx context.Context, f PendingFilter, page, perPage int) ([]Log, int64, error)
	Reopen(ctx context.Context, id primitive.ObjectID, p ReopenParams) (*Log, error)
	// ApplyComplaint counts one complaint and, when reopen is set, returns
	// the log to review in the same write. It fails with errStale if the log
	// changed since current was read.
	ApplyComplaint(ctx context.Context, current *Log, reopen *ReopenParams) (*Log, error)
}

var errStale = errors.New("moderation log changed concurrently")

type Repository struct {
	logsCollection *mongo.Collection
}

func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	logsCollection := db.Collection("moderation_logs")

	_, err := logsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "contentType", Value: 1}, {Key: "contentId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "status", Value: 1},
				{Key: "contentType", Value: 1},
				{Key: "regionId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create moderation log indexes: %w", err)
	}

	return &Repository{logsCollection: logsCollection}, nil
}

// UpsertDecision writes the classifier decision, creating the log on first
// submission. Resolution and counters are only initialised on insert.
func (r *Repository) UpsertDecision(ctx context.Context, sub Submission, d Decision) (*Log, error) {
	now := time.Now().UTC()
	set := bson.M{
		"status":      d.Status,
		"confidence":  d.Confidence,
		"flags":       nonNil(d.Flags),
		"suggestions": nonNil(d.Suggestions),
		"rationale":   d.Rationale,
		"updatedAt":   now,
	}
	if sub.AuthorID != "" {
		set["authorId"] = sub.AuthorID
	}
	if sub.RegionID != nil {
		set["regionId"] = *sub.RegionID
	}

	filter := bson.M{"contentType": sub.ContentType, "contentId": sub.ContentID}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"resolution":     nil,
			"resolvedBy":     nil,
			"notes":          "",
			"reviewCycle":    0,
			"complaintCount": 0,
			"createdAt":      now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var log Log
	err := r.logsCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&log)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted first; the retry matches its document.
		err = r.logsCollection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&log)
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

func (r *Repository) GetByContent(ctx context.Context, ct ContentType, contentID string) (*Log, error) {
	return r.findOne(ctx, bson.M{"contentType": ct, "contentId": contentID})
}

func (r *Repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Log, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*Log, error) {
	var log Log
	err := r.logsCollection.FindOne(ctx, filter).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

// ApplyPatch sets only the fields present in p. A resolution is stamped with
// the stored review cycle, so the update runs as a pipeline and every value
// is passed through $literal.
func (r *Repository) ApplyPatch(ctx context.Context, id primitive.ObjectID, p Patch) (*Log, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Status != nil {
		set["status"] = literal(*p.Status)
	}
	if p.Confidence != nil {
		set["confidence"] = literal(*p.Confidence)
	}
	if p.Flags != nil {
		set["flags"] = literal(nonNil(*p.Flags))
	}
	if p.Suggestions != nil {
		set["suggestions"] = literal(nonNil(*p.Suggestions))
	}
	if p.Notes != nil {
		set["notes"] = literal(*p.Notes)
	}
	if p.Resolution != nil {
		set["resolution"] = literal(*p.Resolution)
		set["resolvedCycle"] = "$reviewCycle"
	}
	if p.ResolvedBy != nil {
		set["resolvedBy"] = literal(*p.ResolvedBy)
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, mongo.Pipeline{{{Key: "$set", Value: set}}})
}

func literal(v any) bson.M {
	return bson.M{"$literal": v}
}

// ListPending returns open logs, newest first.
func (r *Repository) ListPending(ctx context.Context, f PendingFilter, page, perPage int) ([]Log, int64, error) {
	filter := bson.M{"status": bson.M{"$in": OpenStatuses}}
	if f.ContentType != nil {
		filter["contentType"] = *f.ContentType
	}
	if f.RegionID != nil {
		filter["regionId"] = *f.RegionID
	}

	total, err := r.logsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	req := pagination.Normalize(page, perPage)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(req.Offset())).
		SetLimit(int64(req.Limit))

	cursor, err := r.logsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	logs := []Log{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// Reopen returns a log to review. The resolution is kept as history.
func (r *Repository) Reopen(ctx context.Context, id primitive.ObjectID, p ReopenParams) (*Log, error) {
	set := bson.M{"status": p.Status, "updatedAt": time.Now().UTC()}
	if p.AppealID != nil {
		set["appealId"] = *p.AppealID
	}
	update := bson.M{"$set": set}
	if p.NewCycle {
		update["$inc"] = bson.M{"reviewCycle": 1}
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, update)
}

func (r *Repository) ApplyComplaint(ctx context.Context, current *Log, reopen *ReopenParams) (*Log, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	inc := bson.M{"complaintCount": 1}
	if reopen != nil {
		set["status"] = reopen.Status
		if reopen.AppealID != nil {
			set["appealId"] = *reopen.AppealID
		}
		if reopen.NewCycle {
			inc["reviewCycle"] = 1
		}
	}
	filter := bson.M{
		"_id":            current.ID,
		"status":         current.Status,
		"resolution":     current.Resolution,
		"reviewCycle":    current.ReviewCycle,
		"complaintCount": current.ComplaintCount,
		"updatedAt":      current.UpdatedAt,
	}

	log, err := r.findOneAndUpdate(ctx, filter, bson.M{"$set": set, "$inc": inc})
	if errors.Is(err, apperrors.ErrNotFound) {
		if _, err := r.GetByID(ctx, current.ID); err != nil {
			return nil, err
		}
		return nil, errStale
	}
	return log, err
}

func (r *Repository) findOneAndUpdate(ctx context.Context, filter bson.M, update any) (*Log, error) {
	var log Log
	err := r.logsCollection.FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &log, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
