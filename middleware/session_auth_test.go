package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slotbooker/config"
	"slotbooker/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionRouter(t *testing.T) *gin.Engine {
	t.Helper()
	mr := miniredis.RunT(t)
	utils.AuthCacheClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { utils.AuthCacheClient = nil })
	config.AppConfig.JWTSecret = "test-secret"

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/protected", SessionAuthMiddleware(), func(c *gin.Context) {
		var body struct {
			AuthToken string `json:"authToken"`
			Note      string `json:"note"`
		}
		_ = c.ShouldBindJSON(&body)
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("userEmail"), "note": body.Note})
	})
	return r
}

func issueSession(t *testing.T, email string) string {
	t.Helper()
	token, err := utils.GenerateToken(email, time.Hour)
	require.NoError(t, err)
	err = utils.GetAuthCacheClient().Set(context.Background(), utils.AuthCachePrefix+email, utils.HashToken(token), time.Hour).Err()
	require.NoError(t, err)
	return token
}

func TestSessionAuthBearerHeader(t *testing.T) {
	r := setupSessionRouter(t)
	token := issueSession(t, "sam@example.com")

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sam@example.com")
}

func TestSessionAuthBodyTokenFallback(t *testing.T) {
	r := setupSessionRouter(t)
	token := issueSession(t, "sam@example.com")

	body := `{"authToken":"` + token + `","note":"still bindable"}`
	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "sam@example.com")
	// The middleware must restore the body for the handler's own bind.
	assert.Contains(t, w.Body.String(), "still bindable")
}

func TestSessionAuthMissingToken(t *testing.T) {
	r := setupSessionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthNoLiveSession(t *testing.T) {
	r := setupSessionRouter(t)

	// Valid JWT but nothing stored in the auth cache.
	token, err := utils.GenerateToken("sam@example.com", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthTokenHashMismatch(t *testing.T) {
	r := setupSessionRouter(t)
	issueSession(t, "sam@example.com")

	// A second token for the same email does not match the stored hash.
	other, err := utils.GenerateToken("sam@example.com", 2*time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+other)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionAuthGarbageToken(t *testing.T) {
	r := setupSessionRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/protected", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
