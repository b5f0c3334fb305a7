package journal

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateJournalRequest) (*domain.Journal, error)
	// List returns all articles with img keys resolved to signed URLs.
	List(ctx context.Context) ([]domain.Journal, error)
	// Latest returns the most recently created article.
	Latest(ctx context.Context) (*domain.Journal, error)
	Get(ctx context.Context, journalID string) (*domain.Journal, error)
	Update(ctx context.Context, req domain.UpdateJournalRequest) (*domain.Journal, error)
	Delete(ctx context.Context, journalID string) error
	// UploadImage stores a replacement image and deletes the previous object
	// key before the new one is recorded.
	UploadImage(ctx context.Context, journalID string, r io.Reader, contentType string) (*domain.Journal, error)
}

type journalStore interface {
	Put(ctx context.Context, j *domain.Journal) error
	Get(ctx context.Context, journalID string) (*domain.Journal, error)
	Scan(ctx context.Context) ([]domain.Journal, error)
	Update(ctx context.Context, journalID string, updates map[string]interface{}) error
	Delete(ctx context.Context, journalID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo         journalStore
	objects      objectStore
	signedURLTTL time.Duration
}

func NewService(repo journalStore, objects objectStore, signedURLTTL time.Duration) Service {
	return &service{repo: repo, objects: objects, signedURLTTL: signedURLTTL}
}

func (s *service) Create(ctx context.Context, req domain.CreateJournalRequest) (*domain.Journal, error) {
	now := time.Now().UTC()
	j := &domain.Journal{
		JournalID: id.New(),
		Title:     req.Title,
		Par:       req.Par,
		Text:      req.Text,
		Img:       req.Img,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *service) List(ctx context.Context) ([]domain.Journal, error) {
	journals, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range journals {
		s.resolveImg(ctx, &journals[i])
	}
	return journals, nil
}

func (s *service) Latest(ctx context.Context) (*domain.Journal, error) {
	journals, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if len(journals) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := &journals[0]
	for i := range journals {
		if journals[i].CreatedAt.After(latest.CreatedAt) {
			latest = &journals[i]
		}
	}
	s.resolveImg(ctx, latest)
	return latest, nil
}

func (s *service) Get(ctx context.Context, journalID string) (*domain.Journal, error) {
	j, err := s.repo.Get(ctx, journalID)
	if err != nil {
		return nil, err
	}
	s.resolveImg(ctx, j)
	return j, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateJournalRequest) (*domain.Journal, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Par != nil {
		updates["par"] = *req.Par
	}
	if req.Text != nil {
		updates["text"] = *req.Text
	}
	if len(updates) == 0 {
		return nil, domain.ErrBadRequest
	}
	if err := s.repo.Update(ctx, req.ID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, req.ID)
}

func (s *service) Delete(ctx context.Context, journalID string) error {
	j, err := s.repo.Get(ctx, journalID)
	if err != nil {
		return err
	}
	if j.Img != "" {
		if err := s.objects.Delete(ctx, j.Img); err != nil {
			slog.Warn("failed to delete journal image object", "journal_id", journalID, "err", err)
		}
	}
	return s.repo.Delete(ctx, journalID)
}

func (s *service) UploadImage(ctx context.Context, journalID string, r io.Reader, contentType string) (*domain.Journal, error) {
	j, err := s.repo.Get(ctx, journalID)
	if err != nil {
		return nil, err
	}
	if j.Img != "" {
		if err := s.objects.Delete(ctx, j.Img); err != nil {
			return nil, err
		}
	}
	key := id.NewObjectKey()
	if err := s.objects.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, journalID, map[string]interface{}{"img": key}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, journalID)
}

// resolveImg swaps the stored object key for a signed URL. A presign failure
// leaves the key in place rather than failing the whole read.
func (s *service) resolveImg(ctx context.Context, j *domain.Journal) {
	if j.Img == "" {
		return
	}
	url, err := s.objects.PresignedURL(ctx, j.Img, s.signedURLTTL)
	if err != nil {
		slog.Warn("failed to presign journal image", "journal_id", j.JournalID, "err", err)
		return
	}
	j.Img = url
}
