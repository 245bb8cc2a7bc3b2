package appeals

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/moderation/internal/features/classifier"
	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	svc        *Service
	moderation *moderation.Service
	store      *MemoryRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	modSvc := moderation.NewService(moderation.NewMemoryRepository(), classifier.NewKeyword(), nil, time.Second, log)
	store := NewMemoryRepository()
	return &fixture{svc: NewService(store, modSvc, nil, log), moderation: modSvc, store: store}
}

// rejected classifies an item for author-1 and has a moderator reject it.
func (f *fixture) rejected(t *testing.T, id string, resolution *moderation.Resolution) *moderation.Log {
	t.Helper()
	ctx := context.Background()
	log, err := f.moderation.Moderate(ctx, moderation.Submission{
		ContentType: moderation.ContentClassified,
		ContentID:   id,
		AuthorID:    "author-1",
		Title:       "Bike for sale",
		Body:        "Blue road bike, barely used.",
	})
	require.NoError(t, err)

	status := moderation.StatusRejected
	log, err = f.moderation.ReceiveFeedback(ctx, log.ID, moderation.Patch{Status: &status, Resolution: resolution})
	require.NoError(t, err)
	return log
}

func TestFileAppeal_ReopensReview(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	removed := moderation.ResolutionRemoved
	log := f.rejected(t, "c1", &removed)

	a, err := f.svc.FileAppeal(ctx, FileAppealInput{
		ModerationLogID: log.ID,
		CreatorID:       "author-1",
		AppealText:      "  It is my own bike.  ",
	})
	require.NoError(t, err)
	require.Equal(t, "It is my own bike.", a.AppealText)

	after, err := f.moderation.GetByID(ctx, log.ID)
	require.NoError(t, err)
	require.Equal(t, moderation.StatusNeedsReview, after.Status)
	require.Equal(t, a.ID, *after.AppealID)
	require.Equal(t, 1, after.ReviewCycle)
	require.Equal(t, moderation.ResolutionRemoved, *after.Resolution)

	got, err := f.svc.GetAppeal(ctx, log.ID)
	require.NoError(t, err)
	require.Equal(t, a.ID, got.ID)
}

func TestFileAppeal_Duplicate(t *testing.T) {
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)

	first, err := f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "please"})
	require.NoError(t, err)

	_, err = f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "again"})
	var dup *apperrors.DuplicateError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, apperrors.KindAppeal, dup.Kind)
	require.Equal(t, first.ID.Hex(), dup.ExistingID)
}

func TestFileAppeal_ConcurrentOneWins(t *testing.T) {
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	wins, dups := 0, 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "x"})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
			} else if errors.Is(err, apperrors.ErrDuplicate) {
				dups++
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 1, wins)
	require.Equal(t, 9, dups)
}

func TestFileAppeal_Forbidden(t *testing.T) {
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)

	_, err := f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "someone-else", AppealText: "mine"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: primitive.NewObjectID(), CreatorID: "author-1", AppealText: "mine"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestFileAppeal_Eligibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	published := moderation.ResolutionPublished
	log := f.rejected(t, "c1", &published)
	_, err := f.svc.FileAppeal(ctx, FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)

	approved, err := f.moderation.Moderate(ctx, moderation.Submission{
		ContentType: moderation.ContentEvent, ContentID: "e1", AuthorID: "author-1", Body: "Choir practice on Tuesday.",
	})
	require.NoError(t, err)
	require.Equal(t, moderation.StatusApproved, approved.Status)
	_, err = f.svc.FileAppeal(ctx, FileAppealInput{ModerationLogID: approved.ID, CreatorID: "author-1", AppealText: "x"})
	require.ErrorIs(t, err, apperrors.ErrInvalidState)
}

func TestFileAppeal_RejectedAfterComplaintReopen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	log, err := f.moderation.Moderate(ctx, moderation.Submission{
		ContentType: moderation.ContentEvent, ContentID: "e1", AuthorID: "author-1", Body: "Choir practice on Tuesday.",
	})
	require.NoError(t, err)
	published := moderation.ResolutionPublished
	_, err = f.moderation.ReceiveFeedback(ctx, log.ID, moderation.Patch{Resolution: &published})
	require.NoError(t, err)

	_, reopened, err := f.moderation.RecordComplaint(ctx, log.ID)
	require.NoError(t, err)
	require.True(t, reopened)

	rejected := moderation.StatusRejected
	_, err = f.moderation.ReceiveFeedback(ctx, log.ID, moderation.Patch{Status: &rejected})
	require.NoError(t, err)

	a, err := f.svc.FileAppeal(ctx, FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "Nothing wrong here."})
	require.NoError(t, err)

	after, err := f.moderation.GetByID(ctx, log.ID)
	require.NoError(t, err)
	require.Equal(t, moderation.StatusNeedsReview, after.Status)
	require.Equal(t, a.ID, *after.AppealID)
	require.Equal(t, 2, after.ReviewCycle)
}

func TestFileAppeal_TextBounds(t *testing.T) {
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)

	for _, text := range []string{"", "   ", strings.Repeat("a", 2001)} {
		_, err := f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: text})
		var verr *apperrors.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "appeal_text", verr.Field)
	}

	_, err := f.svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: strings.Repeat("ü", 2000)})
	require.NoError(t, err)
}

type staticOwner string

func (s staticOwner) ResolveOwner(ctx context.Context, log *moderation.Log) (string, error) {
	return string(s), nil
}

func TestFileAppeal_CustomOwnerResolver(t *testing.T) {
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)
	svc := NewService(f.store, f.moderation, staticOwner("publisher-9"), zaptest.NewLogger(t))

	_, err := svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "author-1", AppealText: "x"})
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.FileAppeal(context.Background(), FileAppealInput{ModerationLogID: log.ID, CreatorID: "publisher-9", AppealText: "x"})
	require.NoError(t, err)
}

func TestHandler_AppealFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "appeals-secret"
	f := newFixture(t)
	log := f.rejected(t, "c1", nil)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1", middleware.Auth(secret)), f.svc)

	call := func(method, path, userID, role string, body any) (int, map[string]any) {
		var buf bytes.Buffer
		if body != nil {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		tok, err := jwt.GenerateToken(userID, role, jwt.DefaultConfig(secret))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return w.Code, out
	}

	path := "/api/v1/moderation/logs/" + log.ID.Hex()

	code, body := call("POST", path+"/appeals", "intruder", jwt.RoleUser, FileAppealRequest{AppealText: "mine"})
	require.Equal(t, 403, code)
	require.Equal(t, "unauthorized", body["error"])

	code, body = call("POST", path+"/appeals", "author-1", jwt.RoleUser, FileAppealRequest{AppealText: "Please reconsider"})
	require.Equal(t, 201, code)
	data := body["data"].(map[string]any)
	require.Equal(t, data["appeal_id"], data["complaint_id"])

	code, body = call("POST", path+"/appeals", "author-1", jwt.RoleUser, FileAppealRequest{AppealText: "again"})
	require.Equal(t, 422, code)
	require.Equal(t, "duplicate_appeal", body["error"])

	code, _ = call("GET", path+"/appeal", "author-1", jwt.RoleUser, nil)
	require.Equal(t, 403, code)

	code, body = call("GET", path+"/appeal", "mod-1", jwt.RoleModerator, nil)
	require.Equal(t, 200, code)
	require.Equal(t, "Please reconsider", body["data"].(map[string]any)["appeal_text"])
}
