package file

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
)

type UploadInput struct {
	Reader      io.Reader
	ContentType string
	SubType     string
	Title       string
}

type Service interface {
	Upload(ctx context.Context, input UploadInput) (*domain.File, error)
	List(ctx context.Context) ([]domain.File, error)
	// SignedURL returns a time-limited download link for the attachment.
	SignedURL(ctx context.Context, fileID string) (string, error)
	Delete(ctx context.Context, fileID string) (*domain.File, error)
}

type fileStore interface {
	Put(ctx context.Context, f *domain.File) error
	Get(ctx context.Context, fileID string) (*domain.File, error)
	Scan(ctx context.Context) ([]domain.File, error)
	Delete(ctx context.Context, fileID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo         fileStore
	objects      objectStore
	signedURLTTL time.Duration
}

func NewService(repo fileStore, objects objectStore, signedURLTTL time.Duration) Service {
	return &service{repo: repo, objects: objects, signedURLTTL: signedURLTTL}
}

func (s *service) Upload(ctx context.Context, input UploadInput) (*domain.File, error) {
	key := id.NewObjectKey() + ".pdf"
	if err := s.objects.Upload(ctx, key, input.Reader, input.ContentType); err != nil {
		return nil, err
	}
	f := &domain.File{
		FileID:    id.New(),
		SubType:   input.SubType,
		Object:    key,
		Title:     input.Title,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) List(ctx context.Context) ([]domain.File, error) {
	return s.repo.Scan(ctx)
}

func (s *service) SignedURL(ctx context.Context, fileID string) (string, error) {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignedURL(ctx, f.Object, s.signedURLTTL)
}

func (s *service) Delete(ctx context.Context, fileID string) (*domain.File, error) {
	f, err := s.repo.Get(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, fileID); err != nil {
		return nil, err
	}
	if err := s.objects.Delete(ctx, f.Object); err != nil {
		slog.Warn("failed to delete attachment object", "file_id", fileID, "err", err)
	}
	return f, nil
}
