package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/moderation/internal/pkg/jwt"
)

const testSecret = "test-secret"

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(testSecret), func(c *gin.Context) {
		c.JSON(200, gin.H{"user": ActingUser(c), "role": c.GetString(RoleKey)})
	})
	r.GET("/moderators", Auth(testSecret), RequireRole(jwt.RoleModerator), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	r.GET("/ingest", Auth(testSecret), RequireRole(jwt.RoleService, jwt.RoleModerator), func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	return r
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := jwt.GenerateToken(userID, role, jwt.DefaultConfig(testSecret))
	require.NoError(t, err)
	return "Bearer " + tok
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	r := newProtectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
	var body map[string]any
	err := json.Unmarshal(w.Body.Bytes(), &body)
	require.NoError(t, err)
	require.Equal(t, "unauthenticated", body["error"])
	require.Equal(t, "Authorization header required", body["message"])
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	r := newProtectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	r := newProtectedRouter()
	tok, err := jwt.GenerateToken("u1", "", jwt.DefaultConfig("other-secret"))
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	require.Equal(t, 401, w.Code)
}

func TestAuthMiddleware_SetsActingUser(t *testing.T) {
	r := newProtectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", bearer(t, "u1", ""))
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "u1", body["user"])
	require.Equal(t, jwt.RoleUser, body["role"])
}

func TestRequireRole(t *testing.T) {
	r := newProtectedRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/moderators", nil)
	req.Header.Set("Authorization", bearer(t, "u1", jwt.RoleUser))
	r.ServeHTTP(w, req)
	require.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/moderators", nil)
	req.Header.Set("Authorization", bearer(t, "mod1", jwt.RoleModerator))
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
}

func TestRequireRole_AnyOf(t *testing.T) {
	r := newProtectedRouter()

	for role, want := range map[string]int{
		jwt.RoleService:   200,
		jwt.RoleModerator: 200,
		jwt.RoleUser:      403,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ingest", nil)
		req.Header.Set("Authorization", bearer(t, "caller", role))
		r.ServeHTTP(w, req)
		require.Equal(t, want, w.Code, role)
	}
}
