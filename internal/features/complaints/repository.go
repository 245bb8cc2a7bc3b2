package complaints

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists complaints. Insert enforces one complaint per
// (content, complainant) and reports the winner on conflict.
type Store interface {
	Insert(ctx context.Context, c *Complaint) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkReopened(ctx context.Context, id primitive.ObjectID) error
	FindByComplainant(ctx context.Context, ct moderation.ContentType, contentID, userID string) (*Complaint, error)
	ListByContent(ctx context.Context, ct moderation.ContentType, contentID string, page, perPage int) ([]Complaint, int64, error)
}

type Repository struct {
	complaintsCollection *mongo.Collection
}

func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	complaintsCollection := db.Collection("content_complaints")

	_, err := complaintsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "contentType", Value: 1},
				{Key: "contentId", Value: 1},
				{Key: "complainantId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "contentType", Value: 1},
				{Key: "contentId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create complaint indexes: %w", err)
	}

	return &Repository{complaintsCollection: complaintsCollection}, nil
}

// Insert creates the complaint. On a uniqueness conflict it returns a
// DuplicateError carrying the existing complaint's id.
func (r *Repository) Insert(ctx context.Context, c *Complaint) error {
	c.ID = primitive.NewObjectID()
	c.CreatedAt = time.Now().UTC()

	_, err := r.complaintsCollection.InsertOne(ctx, c)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	existing, findErr := r.FindByComplainant(ctx, c.ContentType, c.ContentID, c.ComplainantID)
	if findErr != nil {
		return fmt.Errorf("load existing complaint: %w", findErr)
	}
	return &apperrors.DuplicateError{Kind: apperrors.KindComplaint, ExistingID: existing.ID.Hex()}
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.complaintsCollection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *Repository) MarkReopened(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.complaintsCollection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reopenedReview": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) FindByComplainant(ctx context.Context, ct moderation.ContentType, contentID, userID string) (*Complaint, error) {
	var c Complaint
	err := r.complaintsCollection.FindOne(ctx, bson.M{
		"contentType":   ct,
		"contentId":     contentID,
		"complainantId": userID,
	}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByContent returns complaints for one item, newest first.
func (r *Repository) ListByContent(ctx context.Context, ct moderation.ContentType, contentID string, page, perPage int) ([]Complaint, int64, error) {
	filter := bson.M{"contentType": ct, "contentId": contentID}

	total, err := r.complaintsCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	req := pagination.Normalize(page, perPage)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(req.Offset())).
		SetLimit(int64(req.Limit))

	cursor, err := r.complaintsCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	out := []Complaint{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
