package journal

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockJournalStore struct{ mock.Mock }

func (m *mockJournalStore) Put(ctx context.Context, j *domain.Journal) error {
	return m.Called(ctx, j).Error(0)
}
func (m *mockJournalStore) Get(ctx context.Context, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, journalID)
	if j, _ := args.Get(0).(*domain.Journal); j != nil {
		return j, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJournalStore) Scan(ctx context.Context) ([]domain.Journal, error) {
	args := m.Called(ctx)
	if js, _ := args.Get(0).([]domain.Journal); js != nil {
		return js, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockJournalStore) Update(ctx context.Context, journalID string, updates map[string]interface{}) error {
	return m.Called(ctx, journalID, updates).Error(0)
}
func (m *mockJournalStore) Delete(ctx context.Context, journalID string) error {
	return m.Called(ctx, journalID).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) error {
	return m.Called(ctx, key, r, contentType).Error(0)
}
func (m *mockObjectStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockObjectStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// --- tests ---

func TestCreate(t *testing.T) {
	js := &mockJournalStore{}
	var stored *domain.Journal
	js.On("Put", mock.Anything, mock.AnythingOfType("*domain.Journal")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Journal) }).
		Return(nil)

	svc := NewService(js, nil, time.Hour)
	j, err := svc.Create(context.Background(), domain.CreateJournalRequest{Title: "Issue 1", Text: "body"})
	require.NoError(t, err)

	assert.Len(t, stored.JournalID, 24)
	assert.Equal(t, "Issue 1", j.Title)
}

func TestList_ResolvesSignedURLs(t *testing.T) {
	js := &mockJournalStore{}
	os := &mockObjectStore{}

	js.On("Scan", mock.Anything).Return([]domain.Journal{
		{JournalID: "a", Img: "key-a"},
		{JournalID: "b"}, // no image, no presign call
	}, nil)
	os.On("PresignedURL", mock.Anything, "key-a", time.Hour).Return("https://signed/a", nil)

	svc := NewService(js, os, time.Hour)
	out, err := svc.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://signed/a", out[0].Img)
	assert.Empty(t, out[1].Img)
	os.AssertNumberOfCalls(t, "PresignedURL", 1)
}

func TestLatest_PicksNewest(t *testing.T) {
	js := &mockJournalStore{}
	base := time.Now()
	js.On("Scan", mock.Anything).Return([]domain.Journal{
		{JournalID: "old", CreatedAt: base.Add(-2 * time.Hour)},
		{JournalID: "new", CreatedAt: base},
		{JournalID: "mid", CreatedAt: base.Add(-time.Hour)},
	}, nil)

	svc := NewService(js, nil, time.Hour)
	j, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "new", j.JournalID)
}

func TestLatest_Empty(t *testing.T) {
	js := &mockJournalStore{}
	js.On("Scan", mock.Anything).Return([]domain.Journal{}, nil)

	svc := NewService(js, nil, time.Hour)
	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUploadImage_DeletesOldKeyFirst(t *testing.T) {
	js := &mockJournalStore{}
	os := &mockObjectStore{}

	var order []string
	js.On("Get", mock.Anything, "j1").Return(&domain.Journal{JournalID: "j1", Img: "old-key"}, nil)
	os.On("Delete", mock.Anything, "old-key").
		Run(func(mock.Arguments) { order = append(order, "delete") }).Return(nil)
	os.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/png").
		Run(func(mock.Arguments) { order = append(order, "upload") }).Return(nil)
	js.On("Update", mock.Anything, "j1", mock.MatchedBy(func(u map[string]interface{}) bool {
		key, ok := u["img"].(string)
		return ok && len(key) == 64 && key != "old-key"
	})).Return(nil)

	svc := NewService(js, os, time.Hour)
	_, err := svc.UploadImage(context.Background(), "j1", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, []string{"delete", "upload"}, order)
	js.AssertExpectations(t)
	os.AssertExpectations(t)
}

func TestUploadImage_NoPriorImage_SkipsDelete(t *testing.T) {
	js := &mockJournalStore{}
	os := &mockObjectStore{}

	js.On("Get", mock.Anything, "j1").Return(&domain.Journal{JournalID: "j1"}, nil)
	os.On("Upload", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").Return(nil)
	js.On("Update", mock.Anything, "j1", mock.Anything).Return(nil)

	svc := NewService(js, os, time.Hour)
	_, err := svc.UploadImage(context.Background(), "j1", strings.NewReader("x"), "image/jpeg")
	require.NoError(t, err)
	os.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdate_NoFields(t *testing.T) {
	svc := NewService(nil, nil, time.Hour)
	_, err := svc.Update(context.Background(), domain.UpdateJournalRequest{ID: "j1"})
	assert.ErrorIs(t, err, domain.ErrBadRequest)
}
