package notifications

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

	first := &Notification{RecipientID: "author-1", Type: TypeRejected, ContentType: moderation.ContentAd, ContentID: "ad-1", ModerationLogID: primitive.NewObjectID()}
	second := &Notification{RecipientID: "author-1", Type: TypeFlagged, ContentType: moderation.ContentAd, ContentID: "ad-2", ModerationLogID: primitive.NewObjectID()}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, &Notification{RecipientID: "author-2", Type: TypeRejected}))

	require.ErrorIs(t, repo.MarkRead(ctx, first.ID, "author-2"), apperrors.ErrNotFound)
	require.NoError(t, repo.MarkRead(ctx, first.ID, "author-1"))

	list, total, err := repo.ListByRecipient(ctx, "author-1", false, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, second.ID, list[0].ID)

	unread, err := repo.CountUnread(ctx, "author-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	marked, err := repo.MarkAllRead(ctx, "author-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), marked)
}
