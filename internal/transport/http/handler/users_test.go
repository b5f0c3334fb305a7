package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/journal-api/internal/domain"
	jwtinfra "github.com/journal-api/internal/infrastructure/jwt"
	"github.com/journal-api/internal/transport/http/middleware"
)

// --- mocks ---

type mockUserSvc struct{ mock.Mock }

func (m *mockUserSvc) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.String(1), args.Error(2)
	}
	return nil, "", args.Error(2)
}

func (m *mockUserSvc) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) UpdateInfo(ctx context.Context, req domain.UpdateInfoRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) UpdateSocialInfo(ctx context.Context, req domain.UpdateSocialInfoRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserSvc) LoginRole(ctx context.Context, userID, role string) error {
	return m.Called(ctx, userID, role).Error(0)
}

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) IssueCode(ctx context.Context, userID, email string) (<-chan error, error) {
	args := m.Called(ctx, userID, email)
	if ch, _ := args.Get(0).(chan error); ch != nil {
		return ch, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthSvc) VerifyCode(ctx context.Context, userID, code string) (string, error) {
	args := m.Called(ctx, userID, code)
	return args.String(0), args.Error(1)
}

func (m *mockAuthSvc) ResendCode(ctx context.Context, userID, email string) error {
	return m.Called(ctx, userID, email).Error(0)
}

// --- helpers ---

const testUserID = "68b0a1b2c3d4e5f601234567"

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

// --- tests ---

func TestRegister_ReturnsUserAndToken(t *testing.T) {
	users := &mockUserSvc{}
	users.On("Register", mock.Anything, domain.RegisterRequest{Email: "a@b.com"}).
		Return(&domain.User{UserID: testUserID, Email: "a@b.com", Role: domain.RoleStandard}, "tok123", nil)

	h := NewUserHandler(users, &mockAuthSvc{})
	rec := postJSON(t, h.Register, "/register", map[string]string{"email": "a@b.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	var env UserEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, testUserID, env.UserID)
	assert.Equal(t, "tok123", env.Token)
	users.AssertExpectations(t)
}

func TestRegister_InvalidEmail(t *testing.T) {
	h := NewUserHandler(&mockUserSvc{}, &mockAuthSvc{})
	rec := postJSON(t, h.Register, "/register", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVerifyOTP_Success(t *testing.T) {
	codes := &mockAuthSvc{}
	codes.On("VerifyCode", mock.Anything, testUserID, "1234").Return("new", nil)

	h := NewUserHandler(&mockUserSvc{}, codes)
	rec := postJSON(t, h.VerifyOTP, "/verifyOTP", map[string]string{"userId": testUserID, "otp": "1234"})

	require.Equal(t, http.StatusOK, rec.Code)
	var env VerifyEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, "VERIFIED", env.Status)
	assert.Equal(t, "new", env.Message)
}

func TestVerifyOTP_WorkflowFailureCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{domain.ErrNoPendingCode, "NO_PENDING_CODE"},
		{domain.ErrCodeExpired, "CODE_EXPIRED"},
		{domain.ErrCodeMismatch, "CODE_MISMATCH"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			codes := &mockAuthSvc{}
			codes.On("VerifyCode", mock.Anything, testUserID, "0000").Return("", tc.err)

			h := NewUserHandler(&mockUserSvc{}, codes)
			rec := postJSON(t, h.VerifyOTP, "/verifyOTP", map[string]string{"userId": testUserID, "otp": "0000"})

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var env VerifyEnvelope
			decodeBody(t, rec, &env)
			assert.Equal(t, "FAILED", env.Status)
			assert.Equal(t, tc.code, env.Code)
		})
	}
}

func TestVerifyOTP_MalformedID_RejectedBeforeService(t *testing.T) {
	codes := &mockAuthSvc{}
	h := NewUserHandler(&mockUserSvc{}, codes)

	rec := postJSON(t, h.VerifyOTP, "/verifyOTP", map[string]string{"userId": "nope", "otp": "1234"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	codes.AssertNotCalled(t, "VerifyCode", mock.Anything, mock.Anything, mock.Anything)
}

func TestResendOTP_Pending(t *testing.T) {
	codes := &mockAuthSvc{}
	codes.On("ResendCode", mock.Anything, testUserID, "a@b.com").Return(nil)

	h := NewUserHandler(&mockUserSvc{}, codes)
	rec := postJSON(t, h.ResendOTP, "/resendOTP", map[string]string{"userId": testUserID, "email": "a@b.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	var env ResendEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, "PENDING", env.Status)
}

func TestResendOTP_DispatchFailureReports200Failed(t *testing.T) {
	codes := &mockAuthSvc{}
	codes.On("ResendCode", mock.Anything, testUserID, "a@b.com").Return(domain.ErrDispatch)

	h := NewUserHandler(&mockUserSvc{}, codes)
	rec := postJSON(t, h.ResendOTP, "/resendOTP", map[string]string{"userId": testUserID, "email": "a@b.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	var env ResendEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, "FAILED", env.Status)
}

func TestLoginAdmin_RoleMismatch(t *testing.T) {
	users := &mockUserSvc{}
	users.On("LoginRole", mock.Anything, testUserID, domain.RoleAdmin).Return(domain.ErrUnauthorized)

	h := NewUserHandler(users, &mockAuthSvc{})
	rec := postJSON(t, h.LoginAdmin, "/loginAdmin", map[string]string{"id": testUserID})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetUserByToken_UsesClaimsFromContext(t *testing.T) {
	users := &mockUserSvc{}
	users.On("Get", mock.Anything, testUserID).Return(&domain.User{UserID: testUserID, Email: "a@b.com"}, nil)

	h := NewUserHandler(users, &mockAuthSvc{})

	req := httptest.NewRequest(http.MethodGet, "/getUserByToken", nil)
	req.Header.Set("Authorization", "Bearer tok123")
	ctx := context.WithValue(req.Context(), middleware.ClaimsKey, &jwtinfra.Claims{UserID: testUserID})
	rec := httptest.NewRecorder()
	h.GetUserByToken(rec, req.WithContext(ctx))

	require.Equal(t, http.StatusOK, rec.Code)
	var env UserEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, testUserID, env.UserID)
	assert.Equal(t, "tok123", env.Token)
}

func TestUpdateInfo_MalformedID(t *testing.T) {
	users := &mockUserSvc{}
	h := NewUserHandler(users, &mockAuthSvc{})

	rec := postJSON(t, h.UpdateInfo, "/updateInfo", map[string]string{"userId": "zz", "name": "n"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	users.AssertNotCalled(t, "UpdateInfo", mock.Anything, mock.Anything)
}
