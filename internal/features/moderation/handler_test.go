package moderation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/moderation/internal/features/classifier"
	"github.com/xyz-asif/moderation/internal/middleware"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
)

const testSecret = "handler-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, classifier.NewKeyword())

	r := gin.New()
	api := r.Group("/api/v1", middleware.Auth(testSecret))
	RegisterRoutes(api, svc)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path, role string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		tok, err := jwt.GenerateToken(role+"-1", role, jwt.DefaultConfig(testSecret))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestHandler_ClassifyFeedbackFlow(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, "POST", "/api/v1/moderation/article/a1/classify", jwt.RoleService, ClassifyRequest{
		AuthorID: "author-1",
		Title:    "Bridge reopens",
		Body:     "Repairs finished ahead of schedule.",
	})
	require.Equal(t, 200, w.Code)
	data := body["data"].(map[string]any)
	require.Equal(t, "pending", data["status"])
	require.Nil(t, data["resolution"])
	logID := data["id"].(string)

	w, body = doJSON(t, r, "GET", "/api/v1/moderation/article/a1", jwt.RoleUser, nil)
	require.Equal(t, 200, w.Code)
	require.Equal(t, logID, body["data"].(map[string]any)["id"])

	w, body = doJSON(t, r, "POST", "/api/v1/moderation/"+logID+"/feedback", jwt.RoleModerator, map[string]any{
		"status":     "approved",
		"resolution": "published",
	})
	require.Equal(t, 200, w.Code)
	data = body["data"].(map[string]any)
	require.Equal(t, "approved", data["status"])
	require.Equal(t, "published", data["resolution"])
	require.Equal(t, "moderator-1", data["resolved_by"])

	w, body = doJSON(t, r, "GET", "/api/v1/moderation/pending", jwt.RoleModerator, nil)
	require.Equal(t, 200, w.Code)
	require.Empty(t, body["data"])
	require.Equal(t, float64(20), body["pagination"].(map[string]any)["per_page"])
}

func TestHandler_Errors(t *testing.T) {
	r := newTestRouter(t)

	w, body := doJSON(t, r, "POST", "/api/v1/moderation/podcast/p1/classify", jwt.RoleService, ClassifyRequest{AuthorID: "a", Body: "x"})
	require.Equal(t, 422, w.Code)
	require.Equal(t, "validation_failed", body["error"])
	require.Equal(t, "content_type", body["field"])

	w, _ = doJSON(t, r, "POST", "/api/v1/moderation/article/a1/classify", jwt.RoleUser, ClassifyRequest{AuthorID: "a", Body: "x"})
	require.Equal(t, 403, w.Code)

	w, body = doJSON(t, r, "GET", "/api/v1/moderation/article/missing", jwt.RoleUser, nil)
	require.Equal(t, 404, w.Code)
	require.Equal(t, "not_found", body["error"])

	w, _ = doJSON(t, r, "POST", "/api/v1/moderation/not-an-id/feedback", jwt.RoleModerator, map[string]any{"notes": "x"})
	require.Equal(t, 422, w.Code)

	w, body = doJSON(t, r, "POST", "/api/v1/moderation/0123456789abcdef01234567/feedback", jwt.RoleModerator, map[string]any{"status": "deleted"})
	require.Equal(t, 422, w.Code)
	require.Equal(t, "status", body["field"])

	w, _ = doJSON(t, r, "GET", "/api/v1/moderation/pending", jwt.RoleUser, nil)
	require.Equal(t, 403, w.Code)

	w, _ = doJSON(t, r, "GET", "/api/v1/moderation/pending", "", nil)
	require.Equal(t, 401, w.Code)
}
