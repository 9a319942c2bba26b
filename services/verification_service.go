package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fitdiary/backend/models"
	"github.com/fitdiary/backend/repositories"
	"github.com/fitdiary/backend/utils"
)

const (
	DefaultVerificationTTL = 15 * time.Minute
	verificationCodeLength = 6
)

type EmailChangeInput struct {
	Email string `json:"email" validate:"required,email"`
}

type EmailConfirmInput struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type pendingEmail struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerificationService confirms email changes with a short-lived code kept
// in Redis and delivered by mail.
type VerificationService struct {
	rdb    redis.Cmdable
	mailer utils.Mailer
	ttl    time.Duration
}

func NewVerificationService(rdb redis.Cmdable, mailer utils.Mailer, ttl time.Duration) *VerificationService {
	if ttl <= 0 {
		ttl = DefaultVerificationTTL
	}
	return &VerificationService{rdb: rdb, mailer: mailer, ttl: ttl}
}

func verificationKey(userID string) string {
	return "email-verify:" + userID
}

// RequestEmailChange stores a new code for the user, replacing any pending
// one, and mails it to the new address.
func (s *VerificationService) RequestEmailChange(ctx context.Context, users repositories.UserRepository, userID string, in EmailChangeInput) error {
	if s.rdb == nil || s.mailer == nil {
		return errors.New("email verification is not configured")
	}
	email := repositories.NormalizeEmail(in.Email)
	owner, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil && owner.ID != userID:
		return fmt.Errorf("%w: email already in use", utils.ErrInvalidRequestPayload)
	case err == nil:
		return fmt.Errorf("%w: email unchanged", utils.ErrInvalidRequestPayload)
	case !isNotFound(err):
		return err
	}

	code, err := utils.GenerateNumericCode(verificationCodeLength)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(pendingEmail{Email: email, Code: code})
	if err != nil {
		return fmt.Errorf("encode pending email: %w", err)
	}
	if err := s.rdb.Set(ctx, verificationKey(userID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("store verification code: %w", err)
	}

	subject, body := utils.VerificationEmail(code, s.ttl.String())
	return s.mailer.Send(ctx, email, subject, body)
}

// ConfirmEmailChange applies the pending address when code matches. The
// code is single use.
func (s *VerificationService) ConfirmEmailChange(ctx context.Context, users repositories.UserRepository, userID string, in EmailConfirmInput) (*models.User, error) {
	if s.rdb == nil {
		return nil, errors.New("email verification is not configured")
	}
	key := verificationKey(userID)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: no pending email change", utils.ErrInvalidRequestPayload)
	}
	if err != nil {
		return nil, fmt.Errorf("load verification code: %w", err)
	}
	var pending pendingEmail
	if err := json.Unmarshal(raw, &pending); err != nil {
		return nil, fmt.Errorf("decode pending email: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(in.Code)) != 1 {
		return nil, fmt.Errorf("%w: wrong verification code", utils.ErrInvalidRequestPayload)
	}

	user, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Email = pending.Email
	if err := users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already in use", utils.ErrInvalidRequestPayload)
		}
		return nil, err
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		return nil, fmt.Errorf("clear verification code: %w", err)
	}
	return user, nil
}
