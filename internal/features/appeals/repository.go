package appeals

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists appeals, one per moderation log.
type Store interface {
	Insert(ctx context.Context, a *Appeal) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindByLog(ctx context.Context, logID primitive.ObjectID) (*Appeal, error)
}

type Repository struct {
	appealsCollection *mongo.Collection
}

func NewRepository(ctx context.Context, db *mongo.Database) (*Repository, error) {
	appealsCollection := db.Collection("content_appeals")

	_, err := appealsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "moderationLogId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "creatorId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create appeal indexes: %w", err)
	}

	return &Repository{appealsCollection: appealsCollection}, nil
}

func (r *Repository) Insert(ctx context.Context, a *Appeal) error {
	a.ID = primitive.NewObjectID()
	a.CreatedAt = time.Now().UTC()

	_, err := r.appealsCollection.InsertOne(ctx, a)
	if err == nil {
		return nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return err
	}

	existing, findErr := r.FindByLog(ctx, a.ModerationLogID)
	if findErr != nil {
		return fmt.Errorf("load existing appeal: %w", findErr)
	}
	return &apperrors.DuplicateError{Kind: apperrors.KindAppeal, ExistingID: existing.ID.Hex()}
}

func (r *Repository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.appealsCollection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *Repository) FindByLog(ctx context.Context, logID primitive.ObjectID) (*Appeal, error) {
	var a Appeal
	err := r.appealsCollection.FindOne(ctx, bson.M{"moderationLogId": logID}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}
