package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/journal-api/internal/domain"
	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

// Service drives the OTP email verification workflow.
//
// Concurrency contract: IssueCode persists the record synchronously and
// dispatches the email in the background, returning a channel that receives
// the dispatch result exactly once. Callers may ignore it (register) or wait
// on it (resend). Concurrent resend/verify calls for one user are not
// serialized; two racing resends can each purge and reissue, leaving the
// client holding a stale code.
type Service interface {
	// IssueCode stores a fresh code for the user and emails it. The returned
	// channel yields the dispatch result; the stored record survives a
	// dispatch failure.
	IssueCode(ctx context.Context, userID, email string) (<-chan error, error)
	// VerifyCode checks the submitted code against the most recently issued
	// record. On success all pending records are purged, the user is marked
	// verified, and the returned message is "exist" when the profile name was
	// already populated, "new" otherwise.
	VerifyCode(ctx context.Context, userID, code string) (string, error)
	// ResendCode purges all pending records, then issues and dispatches a new
	// code, waiting for the dispatch result.
	ResendCode(ctx context.Context, userID, email string) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.OTPVerification) error
	GetLatest(ctx context.Context, userID string) (*domain.OTPVerification, error)
	DeleteAll(ctx context.Context, userID string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type mailer interface {
	SendEmail(to, subject, html string) error
}

type service struct {
	verificationRepo verificationStore
	userRepo         userStore
	mailer           mailer
	ttl              time.Duration
}

type ServiceDeps struct {
	VerificationRepo verificationStore
	UserRepo         userStore
	Mailer           mailer
	OTPTTL           time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		verificationRepo: deps.VerificationRepo,
		userRepo:         deps.UserRepo,
		mailer:           deps.Mailer,
		ttl:              deps.OTPTTL,
	}
}

func (s *service) IssueCode(ctx context.Context, userID, email string) (<-chan error, error) {
	if userID == "" || email == "" {
		return nil, fmt.Errorf("user id and email required: %w", domain.ErrBadRequest)
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	v := &domain.OTPVerification{
		UserID:    userID,
		OTPID:     ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		CodeHash:  string(hash),
		CodePlain: code,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	if err := s.verificationRepo.Put(ctx, v); err != nil {
		return nil, err
	}

	done := make(chan error, 1)
	go func() {
		err := s.mailer.SendEmail(email, "Verify Your Email",
			fmt.Sprintf("<p>Your verification code: %s</p>", code))
		if err != nil {
			slog.Error("otp mail dispatch failed", "user_id", userID, "err", err)
			done <- fmt.Errorf("%w: %v", domain.ErrDispatch, err)
		} else {
			done <- nil
		}
		close(done)
	}()
	return done, nil
}

func (s *service) VerifyCode(ctx context.Context, userID, code string) (string, error) {
	if userID == "" || code == "" {
		return "", fmt.Errorf("user id and otp required: %w", domain.ErrBadRequest)
	}

	v, err := s.verificationRepo.GetLatest(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrNoPendingCode
		}
		return "", err
	}

	if v.ExpiresAt < time.Now().Unix() {
		if err := s.verificationRepo.DeleteAll(ctx, userID); err != nil {
			slog.Warn("failed to purge expired otp records", "user_id", userID, "err", err)
		}
		return "", domain.ErrCodeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(code)) != nil {
		// Record stays intact so the user can retry.
		slog.Debug("otp mismatch", "user_id", userID, "submitted", code, "reference", v.CodePlain)
		return "", domain.ErrCodeMismatch
	}

	u, err := s.userRepo.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if err := s.verificationRepo.DeleteAll(ctx, userID); err != nil {
		slog.Warn("failed to purge consumed otp records", "user_id", userID, "err", err)
	}
	if !u.Verified {
		if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"verified": true}); err != nil {
			slog.Warn("failed to mark user verified", "user_id", userID, "err", err)
		}
	}

	if u.Name != "" {
		return "exist", nil
	}
	return "new", nil
}

func (s *service) ResendCode(ctx context.Context, userID, email string) error {
	if userID == "" || email == "" {
		return fmt.Errorf("user id and email required: %w", domain.ErrBadRequest)
	}
	// Purge before issue: after a resend the old code can never verify.
	if err := s.verificationRepo.DeleteAll(ctx, userID); err != nil {
		return err
	}
	done, err := s.IssueCode(ctx, userID, email)
	if err != nil {
		return err
	}
	return <-done
}

// generateCode returns a uniform 4-digit code in [1000, 9999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()+1000), nil
}
