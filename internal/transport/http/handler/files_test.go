package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/journal-api/internal/application/file"
	"github.com/journal-api/internal/domain"
)

type mockFileSvc struct{ mock.Mock }

func (m *mockFileSvc) Upload(ctx context.Context, input file.UploadInput) (*domain.File, error) {
	args := m.Called(ctx, input)
	if f, _ := args.Get(0).(*domain.File); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileSvc) List(ctx context.Context) ([]domain.File, error) {
	args := m.Called(ctx)
	if fs, _ := args.Get(0).([]domain.File); fs != nil {
		return fs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFileSvc) SignedURL(ctx context.Context, fileID string) (string, error) {
	args := m.Called(ctx, fileID)
	return args.String(0), args.Error(1)
}

func (m *mockFileSvc) Delete(ctx context.Context, fileID string) (*domain.File, error) {
	args := m.Called(ctx, fileID)
	if f, _ := args.Get(0).(*domain.File); f != nil {
		return f, args.Error(1)
	}
	return nil, args.Error(1)
}

func getWithParam(h http.HandlerFunc, path, paramValue string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", paramValue)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestGetFile_ReturnsSignedURL(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("SignedURL", mock.Anything, testUserID).Return("https://signed/doc", nil)

	h := NewFileHandler(svc)
	rec := getWithParam(h.Get, "/getFile/"+testUserID, testUserID)

	require.Equal(t, http.StatusOK, rec.Code)
	var env signedURLEnvelope
	decodeBody(t, rec, &env)
	assert.Equal(t, "https://signed/doc", env.URL)
}

func TestGetFile_MalformedID_RejectedBeforeService(t *testing.T) {
	svc := &mockFileSvc{}
	h := NewFileHandler(svc)

	rec := getWithParam(h.Get, "/getFile/not-a-valid-id", "not-a-valid-id")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "SignedURL", mock.Anything, mock.Anything)
}

func TestGetFile_NotFound(t *testing.T) {
	svc := &mockFileSvc{}
	svc.On("SignedURL", mock.Anything, testUserID).Return("", domain.ErrNotFound)

	h := NewFileHandler(svc)
	rec := getWithParam(h.Get, "/getFile/"+testUserID, testUserID)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteFile_MalformedID_RejectedBeforeService(t *testing.T) {
	svc := &mockFileSvc{}
	h := NewFileHandler(svc)

	req := httptest.NewRequest(http.MethodDelete, "/deleteFile/short", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "short")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
