package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
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

func logWith(status moderation.Status, res *moderation.Resolution) *moderation.Log {
	return &moderation.Log{
		ID:          primitive.NewObjectID(),
		ContentType: moderation.ContentEvent,
		ContentID:   "e1",
		AuthorID:    "author-1",
		Status:      status,
		Resolution:  res,
	}
}

func resolution(r moderation.Resolution) *moderation.Resolution { return &r }

func inCycle(l *moderation.Log, review, resolved int) *moderation.Log {
	l.ReviewCycle = review
	l.ResolvedCycle = resolved
	return l
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name   string
		before *moderation.Log
		after  *moderation.Log
		want   string
	}{
		{"first decision rejected", nil, logWith(moderation.StatusRejected, nil), TypeRejected},
		{"first decision flagged", nil, logWith(moderation.StatusFlagged, nil), TypeFlagged},
		{"first decision approved", nil, logWith(moderation.StatusApproved, nil), ""},
		{"unchanged rejection", logWith(moderation.StatusRejected, nil), logWith(moderation.StatusRejected, nil), ""},
		{"resolution set", logWith(moderation.StatusPending, nil), logWith(moderation.StatusPending, resolution(moderation.ResolutionRemoved)), TypeResolution},
		{"resolution repeated", logWith(moderation.StatusPending, resolution(moderation.ResolutionEdited)), logWith(moderation.StatusPending, resolution(moderation.ResolutionEdited)), ""},
		{"reopened", logWith(moderation.StatusApproved, nil), logWith(moderation.StatusNeedsReview, nil), TypeReopened},
		{"queue shuffle", logWith(moderation.StatusPending, nil), logWith(moderation.StatusNeedsReview, nil), ""},
		{"resolved log reopened", logWith(moderation.StatusPending, resolution(moderation.ResolutionPublished)), inCycle(logWith(moderation.StatusNeedsReview, resolution(moderation.ResolutionPublished)), 1, 0), TypeReopened},
		{"resolved again after reopen", inCycle(logWith(moderation.StatusNeedsReview, resolution(moderation.ResolutionPublished)), 1, 0), inCycle(logWith(moderation.StatusNeedsReview, resolution(moderation.ResolutionPublished)), 1, 1), TypeResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := noticeFor(tt.before, tt.after)
			if tt.want == "" {
				require.Nil(t, n)
				return
			}
			require.NotNil(t, n)
			require.Equal(t, tt.want, n.Type)
			require.Equal(t, "author-1", n.RecipientID)
			require.Equal(t, tt.after.ID, n.ModerationLogID)
			require.NotEmpty(t, n.Preview)
		})
	}
}

func TestNoticeFor_NoAuthor(t *testing.T) {
	after := logWith(moderation.StatusRejected, nil)
	after.AuthorID = ""
	require.Nil(t, noticeFor(nil, after))
}

func TestService_InboxIsPerRecipient(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), zaptest.NewLogger(t))

	svc.LogChanged(ctx, nil, logWith(moderation.StatusRejected, nil))
	time.Sleep(time.Millisecond)
	svc.LogChanged(ctx, logWith(moderation.StatusRejected, nil), logWith(moderation.StatusRejected, resolution(moderation.ResolutionRemoved)))
	other := logWith(moderation.StatusFlagged, nil)
	other.AuthorID = "author-2"
	svc.LogChanged(ctx, nil, other)

	list, p, err := svc.List(ctx, "author-1", ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, int64(2), p.Total)
	require.Equal(t, TypeResolution, list[0].Type)

	require.ErrorIs(t, svc.MarkRead(ctx, list[0].ID, "author-2"), apperrors.ErrNotFound)
	require.NoError(t, svc.MarkRead(ctx, list[0].ID, "author-1"))

	count, err := svc.UnreadCount(ctx, "author-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	unread, _, err := svc.List(ctx, "author-1", ListQuery{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	require.Equal(t, TypeRejected, unread[0].Type)

	marked, err := svc.MarkAllRead(ctx, "author-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), marked)

	count, err = svc.UnreadCount(ctx, "author-2")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestService_WiredToModeration(t *testing.T) {
	ctx := context.Background()
	notices := NewService(NewMemoryRepository(), zaptest.NewLogger(t))
	mod := moderation.NewService(moderation.NewMemoryRepository(), classifier.NewKeyword(), nil, time.Second, zaptest.NewLogger(t)).
		WithNotifier(notices)

	log, err := mod.Moderate(ctx, moderation.Submission{
		ContentType: moderation.ContentEvent,
		ContentID:   "e9",
		AuthorID:    "c1",
		Title:       "Open mic",
		Body:        "Open mic night at the library.",
	})
	require.NoError(t, err)
	require.Equal(t, moderation.StatusApproved, log.Status)

	rejected := moderation.StatusRejected
	_, err = mod.ReceiveFeedback(ctx, log.ID, moderation.Patch{Status: &rejected})
	require.NoError(t, err)

	_, err = mod.ReopenForAppeal(ctx, log.ID, primitive.NewObjectID())
	require.NoError(t, err)

	list, _, err := notices.List(ctx, "c1", ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	types := []string{list[0].Type, list[1].Type}
	require.ElementsMatch(t, []string{TypeRejected, TypeReopened}, types)
}

func TestHandler_Inbox(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "notify-secret"
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), zaptest.NewLogger(t))
	svc.LogChanged(ctx, nil, logWith(moderation.StatusRejected, nil))

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1", middleware.Auth(secret)), svc)

	call := func(method, path, user string) (int, map[string]any) {
		tok, err := jwt.GenerateToken(user, jwt.RoleUser, jwt.DefaultConfig(secret))
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, bytes.NewReader(nil))
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		var out map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return w.Code, out
	}

	code, out := call("GET", "/api/v1/notifications", "author-1")
	require.Equal(t, 200, code)
	items := out["data"].([]any)
	require.Len(t, items, 1)
	id := items[0].(map[string]any)["id"].(string)

	code, out = call("GET", "/api/v1/notifications/unread-count", "author-1")
	require.Equal(t, 200, code)
	require.Equal(t, float64(1), out["data"].(map[string]any)["unread_count"])

	code, _ = call("PATCH", "/api/v1/notifications/"+id+"/read", "someone-else")
	require.Equal(t, 404, code)

	code, _ = call("PATCH", "/api/v1/notifications/not-an-id/read", "author-1")
	require.Equal(t, 422, code)

	code, _ = call("PATCH", "/api/v1/notifications/"+id+"/read", "author-1")
	require.Equal(t, 200, code)

	code, out = call("PATCH", "/api/v1/notifications/read-all", "author-1")
	require.Equal(t, 200, code)
	require.Equal(t, float64(0), out["data"].(map[string]any)["marked_count"])
}
