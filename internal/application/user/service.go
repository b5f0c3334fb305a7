package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/journal-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName       = "name"
	fieldCompany    = "company"
	fieldNomination = "nomination"
	fieldJob        = "job"
	fieldAbout      = "about"
	fieldInstagram  = "instagram"
	fieldVK         = "vk"
	fieldTikTok     = "tiktok"
	fieldYouTube    = "youtube"
)

type Service interface {
	// Register creates the identity on first sight of an email and reissues a
	// verification code on every call. The session token is returned either
	// way: registration succeeds even when the verification mail never
	// arrives.
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error)
	Get(ctx context.Context, userID string) (*domain.User, error)
	UpdateInfo(ctx context.Context, req domain.UpdateInfoRequest) (*domain.User, error)
	UpdateSocialInfo(ctx context.Context, req domain.UpdateSocialInfoRequest) (*domain.User, error)
	// LoginRole confirms the user exists and holds the given role.
	LoginRole(ctx context.Context, userID, role string) error
}

type userStore interface {
	Put(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type codeIssuer interface {
	IssueCode(ctx context.Context, userID, email string) (<-chan error, error)
}

type tokenSigner interface {
	Sign(userID string) (string, error)
}

type service struct {
	repo   userStore
	issuer codeIssuer
	signer tokenSigner
}

type ServiceDeps struct {
	UserRepo    userStore
	CodeIssuer  codeIssuer
	TokenSigner tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		repo:   deps.UserRepo,
		issuer: deps.CodeIssuer,
		signer: deps.TokenSigner,
	}
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, string, error) {
	u, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil:
		// Re-registration: no new identity, fresh code regardless of any
		// prior record's TTL.
	case errors.Is(err, domain.ErrNotFound):
		role := req.Role
		if role == "" {
			role = domain.RoleStandard
		}
		now := time.Now().UTC()
		u = &domain.User{
			UserID:    id.New(),
			Email:     req.Email,
			Role:      role,
			Verified:  false,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Put(ctx, u); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", err
	}

	// Dispatch result intentionally dropped: the response must not wait for
	// the mail relay, and a failed send is non-fatal to registration.
	if _, err := s.issuer.IssueCode(ctx, u.UserID, u.Email); err != nil {
		slog.Error("failed to issue verification code", "user_id", u.UserID, "err", err)
	}

	token, err := s.signer.Sign(u.UserID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *service) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) UpdateInfo(ctx context.Context, req domain.UpdateInfoRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	setIf(updates, fieldCompany, req.Company)
	setIf(updates, fieldName, req.Name)
	setIf(updates, fieldNomination, req.Nomination)
	setIf(updates, fieldJob, req.Job)
	setIf(updates, fieldAbout, req.About)
	return s.applyUpdate(ctx, req.UserID, updates)
}

func (s *service) UpdateSocialInfo(ctx context.Context, req domain.UpdateSocialInfoRequest) (*domain.User, error) {
	updates := map[string]interface{}{}
	setIf(updates, fieldInstagram, req.Instagram)
	setIf(updates, fieldVK, req.VK)
	setIf(updates, fieldTikTok, req.TikTok)
	setIf(updates, fieldYouTube, req.YouTube)
	return s.applyUpdate(ctx, req.UserID, updates)
}

func (s *service) applyUpdate(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("no fields to update: %w", domain.ErrBadRequest)
	}
	if err := s.repo.Update(ctx, userID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

func (s *service) LoginRole(ctx context.Context, userID, role string) error {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return err
	}
	if u.Role != role {
		return fmt.Errorf("role %q required: %w", role, domain.ErrUnauthorized)
	}
	return nil
}

func setIf(updates map[string]interface{}, field string, v *string) {
	if v != nil {
		updates[field] = *v
	}
}
