package moderation

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/moderation/internal/pkg/mongotest"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRepository_Mongo(t *testing.T) {
	db := mongotest.Database(t)
	ctx := context.Background()

	repo, err := NewRepository(ctx, db)
	require.NoError(t, err)

	region := "north"
	sub := submission(ContentArticle, "a1")
	sub.RegionID = &region
	decision := Decision{Status: StatusPending, Confidence: 0.9, Rationale: "clean"}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.UpsertDecision(ctx, sub, decision)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := db.Collection("moderation_logs").CountDocuments(ctx, bson.M{"contentId": "a1"})
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	log, err := repo.GetByContent(ctx, ContentArticle, "a1")
	require.NoError(t, err)
	require.Equal(t, StatusPending, log.Status)
	require.Nil(t, log.Resolution)
	require.Equal(t, []string{}, log.Flags)
	require.Equal(t, "north", *log.RegionID)

	notes := "checked"
	removed := ResolutionRemoved
	patched, err := repo.ApplyPatch(ctx, log.ID, Patch{Notes: &notes, Resolution: &removed})
	require.NoError(t, err)
	require.Equal(t, StatusPending, patched.Status)
	require.Equal(t, "checked", patched.Notes)
	require.Equal(t, ResolutionRemoved, *patched.Resolution)

	require.Equal(t, 0, patched.ResolvedCycle)
	require.True(t, patched.Closed())

	counted, err := repo.ApplyComplaint(ctx, patched, nil)
	require.NoError(t, err)
	require.Equal(t, 1, counted.ComplaintCount)
	require.Equal(t, StatusPending, counted.Status)

	// patched is now out of date.
	_, err = repo.ApplyComplaint(ctx, patched, &ReopenParams{Status: StatusNeedsReview, NewCycle: true})
	require.ErrorIs(t, err, errStale)
	_, err = repo.ApplyComplaint(ctx, &Log{ID: primitive.NewObjectID()}, nil)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	escalated, err := repo.ApplyComplaint(ctx, counted, &ReopenParams{Status: StatusNeedsReview, NewCycle: true})
	require.NoError(t, err)
	require.Equal(t, 2, escalated.ComplaintCount)
	require.Equal(t, StatusNeedsReview, escalated.Status)
	require.Equal(t, 1, escalated.ReviewCycle)
	require.False(t, escalated.Closed())

	appealID := primitive.NewObjectID()
	reopened, err := repo.Reopen(ctx, log.ID, ReopenParams{Status: StatusNeedsReview, AppealID: &appealID, NewCycle: true})
	require.NoError(t, err)
	require.Equal(t, 2, reopened.ReviewCycle)
	require.Equal(t, appealID, *reopened.AppealID)

	// Patch values are stored verbatim, and a resolution is stamped with the
	// stored cycle.
	dollar := "$reviewCycle"
	resolved, err := repo.ApplyPatch(ctx, log.ID, Patch{Notes: &dollar, Resolution: &removed})
	require.NoError(t, err)
	require.Equal(t, "$reviewCycle", resolved.Notes)
	require.Equal(t, 2, resolved.ResolvedCycle)
	require.True(t, resolved.Removed())

	// Re-classification keeps resolution and counters.
	again, err := repo.UpsertDecision(ctx, sub, Decision{Status: StatusApproved, Confidence: 0.95})
	require.NoError(t, err)
	require.Equal(t, ResolutionRemoved, *again.Resolution)
	require.Equal(t, 2, again.ComplaintCount)

	logs, total, err := repo.ListPending(ctx, PendingFilter{RegionID: &region}, 1, 20)
	require.NoError(t, err)
	require.Equal(t, int64(0), total)
	require.Empty(t, logs)

	logs, _, err = repo.ListPending(ctx, PendingFilter{}, math.MaxInt, 20)
	require.NoError(t, err)
	require.Empty(t, logs)

	_, err = repo.GetByID(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.ApplyPatch(ctx, primitive.NewObjectID(), Patch{Notes: &notes})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
