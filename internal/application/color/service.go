package color

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateColorRequest) (*domain.Color, error)
	// List returns all colors with img keys resolved to signed URLs.
	List(ctx context.Context) ([]domain.Color, error)
	// Names returns all colors without URL resolution (lookup-table reads).
	Names(ctx context.Context) ([]domain.Color, error)
	Get(ctx context.Context, colorID string) (*domain.Color, error)
	Update(ctx context.Context, req domain.UpdateColorRequest) (*domain.Color, error)
	Delete(ctx context.Context, colorID string) error
	UploadImage(ctx context.Context, colorID string, r io.Reader, contentType string) (*domain.Color, error)
}

type colorStore interface {
	Put(ctx context.Context, c *domain.Color) error
	Get(ctx context.Context, colorID string) (*domain.Color, error)
	Scan(ctx context.Context) ([]domain.Color, error)
	Update(ctx context.Context, colorID string, updates map[string]interface{}) error
	Delete(ctx context.Context, colorID string) error
}

type objectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) error
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo         colorStore
	objects      objectStore
	signedURLTTL time.Duration
}

func NewService(repo colorStore, objects objectStore, signedURLTTL time.Duration) Service {
	return &service{repo: repo, objects: objects, signedURLTTL: signedURLTTL}
}

func (s *service) Create(ctx context.Context, req domain.CreateColorRequest) (*domain.Color, error) {
	now := time.Now().UTC()
	c := &domain.Color{
		ColorID:   id.New(),
		Title:     req.Title,
		Img:       req.Img,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]domain.Color, error) {
	colors, err := s.repo.Scan(ctx)
	if err != nil {
		return nil, err
	}
	for i := range colors {
		s.resolveImg(ctx, &colors[i])
	}
	return colors, nil
}

func (s *service) Names(ctx context.Context) ([]domain.Color, error) {
	return s.repo.Scan(ctx)
}

func (s *service) Get(ctx context.Context, colorID string) (*domain.Color, error) {
	c, err := s.repo.Get(ctx, colorID)
	if err != nil {
		return nil, err
	}
	s.resolveImg(ctx, c)
	return c, nil
}

func (s *service) Update(ctx context.Context, req domain.UpdateColorRequest) (*domain.Color, error) {
	if err := s.repo.Update(ctx, req.ID, map[string]interface{}{"title": req.Title}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, req.ID)
}

func (s *service) Delete(ctx context.Context, colorID string) error {
	c, err := s.repo.Get(ctx, colorID)
	if err != nil {
		return err
	}
	if c.Img != "" {
		if err := s.objects.Delete(ctx, c.Img); err != nil {
			slog.Warn("failed to delete color image object", "color_id", colorID, "err", err)
		}
	}
	return s.repo.Delete(ctx, colorID)
}

func (s *service) UploadImage(ctx context.Context, colorID string, r io.Reader, contentType string) (*domain.Color, error) {
	c, err := s.repo.Get(ctx, colorID)
	if err != nil {
		return nil, err
	}
	if c.Img != "" {
		if err := s.objects.Delete(ctx, c.Img); err != nil {
			return nil, err
		}
	}
	key := id.NewObjectKey()
	if err := s.objects.Upload(ctx, key, r, contentType); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, colorID, map[string]interface{}{"img": key}); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, colorID)
}

func (s *service) resolveImg(ctx context.Context, c *domain.Color) {
	if c.Img == "" {
		return
	}
	url, err := s.objects.PresignedURL(ctx, c.Img, s.signedURLTTL)
	if err != nil {
		slog.Warn("failed to presign color image", "color_id", c.ColorID, "err", err)
		return
	}
	c.Img = url
}
