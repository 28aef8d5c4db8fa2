package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"slotbooker/models"
	"slotbooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService accepts a single hard-coded code per email.
type fakeAuthService struct {
	sentTo []string
	code   string
}

func (f *fakeAuthService) SendOTP(_ context.Context, email string) error {
	f.sentTo = append(f.sentTo, email)
	return nil
}

func (f *fakeAuthService) VerifyOTP(_ context.Context, email, code string) (string, error) {
	if len(f.sentTo) == 0 {
		return "", utils.ErrOTPNotFound
	}
	if code != f.code {
		return "", utils.ErrOTPMismatch
	}
	return "token-for-" + email, nil
}

func (f *fakeAuthService) Logout(_ context.Context, _ string) error { return nil }

func newAuthRouter(svc *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAuthHandler(svc)
	r := gin.New()
	r.POST("/api/send-otp", h.SendOTP)
	r.POST("/api/verify-otp", h.VerifyOTP)
	return r
}

func TestSendOTPEndpoint(t *testing.T) {
	svc := &fakeAuthService{code: "ABC123"}
	r := newAuthRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/send-otp", strings.NewReader(`{"email":"sam@example.com"}`)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"OTP sent successfully"}`, w.Body.String())
	assert.Equal(t, []string{"sam@example.com"}, svc.sentTo)
}

func TestSendOTPEndpointRejectsBadEmail(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/send-otp", strings.NewReader(`{"email":"not-an-email"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyOTPEndpointSuccess(t *testing.T) {
	svc := &fakeAuthService{code: "ABC123"}
	r := newAuthRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/send-otp", strings.NewReader(`{"email":"sam@example.com"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-otp", strings.NewReader(`{"email":"sam@example.com","otp":"ABC123"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Verified)
	assert.NotEmpty(t, resp.AuthToken)
	assert.Equal(t, "sam@example.com", resp.Email)
}

func TestVerifyOTPEndpointWrongCode(t *testing.T) {
	svc := &fakeAuthService{code: "ABC123"}
	r := newAuthRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/send-otp", strings.NewReader(`{"email":"sam@example.com"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-otp", strings.NewReader(`{"email":"sam@example.com","otp":"WRONG1"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var resp models.VerifyOTPResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Verified)
	assert.Empty(t, resp.AuthToken)
}

func TestVerifyOTPEndpointNoPendingCode(t *testing.T) {
	r := newAuthRouter(&fakeAuthService{code: "ABC123"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/verify-otp", strings.NewReader(`{"email":"sam@example.com","otp":"ABC123"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
