package notifications

import (
	"context"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists author notifications. Every read and write is scoped to
// the recipient so one author cannot touch another's inbox.
type Store interface {
	Create(ctx context.Context, n *Notification) error
	ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, perPage int) ([]Notification, int64, error)
	CountUnread(ctx context.Context, recipientID string) (int64, error)
	MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	collection := db.Collection("moderation_notifications")

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "recipientId", Value: 1},
				{Key: "isRead", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "moderationLogId", Value: 1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create notification indexes: %w", err)
	}

	return &Repository{collection: collection}, nil
}

func (r *Repository) Create(ctx context.Context, n *Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()
	n.IsRead = false

	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// ListByRecipient returns unread first, then newest first.
func (r *Repository) ListByRecipient(ctx context.Context, recipientID string, unreadOnly bool, page, perPage int) ([]Notification, int64, error) {
	filter := bson.M{"recipientId": recipientID}
	if unreadOnly {
		filter["isRead"] = false
	}

	opts := options.Find().
		SetSort(bson.D{
			{Key: "isRead", Value: 1},
			{Key: "createdAt", Value: -1},
		}).
		SetSkip(int64((page - 1) * perPage)).
		SetLimit(int64(perPage))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notifications := []Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *Repository) CountUnread(ctx context.Context, recipientID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"recipientId": recipientID,
		"isRead":      false,
	})
}

func (r *Repository) MarkRead(ctx context.Context, id primitive.ObjectID, recipientID string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id, "recipientId": recipientID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *Repository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{"recipientId": recipientID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
