package complaints

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/mongotest"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRepository_Mongo(t *testing.T) {
	db := mongotest.Database(t)
	ctx := context.Background()

	repo, err := NewRepository(ctx, db)
	require.NoError(t, err)

	logID := primitive.NewObjectID()
	first := &Complaint{
		ContentType: moderation.ContentAd, ContentID: "ad-1", ComplainantID: "r1",
		Reason: ReasonScam, ModerationLogID: logID,
	}
	require.NoError(t, repo.Insert(ctx, first))

	err = repo.Insert(ctx, &Complaint{
		ContentType: moderation.ContentAd, ContentID: "ad-1", ComplainantID: "r1",
		Reason: ReasonSpam, ModerationLogID: logID,
	})
	var dup *apperrors.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, first.ID.Hex(), dup.ExistingID)

	require.NoError(t, repo.Insert(ctx, &Complaint{
		ContentType: moderation.ContentAd, ContentID: "ad-1", ComplainantID: "r2",
		Reason: ReasonSpam, ModerationLogID: logID,
	}))

	require.NoError(t, repo.MarkReopened(ctx, first.ID))
	got, err := repo.FindByComplainant(ctx, moderation.ContentAd, "ad-1", "r1")
	require.NoError(t, err)
	require.True(t, got.ReopenedReview)

	list, total, err := repo.ListByContent(ctx, moderation.ContentAd, "ad-1", 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindByComplainant(ctx, moderation.ContentAd, "ad-1", "r1")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.ErrorIs(t, repo.MarkReopened(ctx, first.ID), apperrors.ErrNotFound)
}
