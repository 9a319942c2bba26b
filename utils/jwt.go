package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long an issued token stays valid.
const DefaultTokenTTL = time.Hour

// PublicUser is the identity carried in a token.
type PublicUser struct {
	ID    string `json:"id" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// AuthClaims is the fixed claim set of an auth token: {id, email, name, iat, exp}.
type AuthClaims struct {
	UserID string `json:"id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func (c *AuthClaims) User() PublicUser {
	return PublicUser{ID: c.UserID, Email: c.Email, Name: c.Name}
}

// TokenCodec issues and verifies HS256 tokens. It keeps no state besides
// the secret, so verification is a pure function of token and secret.
type TokenCodec struct {
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	validate *validator.Validate
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: secret, ttl: ttl, now: time.Now, validate: NewValidator()}
}

// WithClock returns a copy of the codec that reads time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

func (c *TokenCodec) TTL() time.Duration { return c.ttl }

// Issue signs a token for user, valid from now for the codec's TTL.
func (c *TokenCodec) Issue(user PublicUser) (string, *AuthClaims, error) {
	if len(c.secret) == 0 {
		return "", nil, errors.New("jwt secret is not configured")
	}
	now := c.now()
	claims := &AuthClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	if err := c.validate.Struct(claims); err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

// Verify checks signature and expiry and parses the claims into the fixed
// schema. Every failure is reported as ErrNotAuthorized.
func (c *TokenCodec) Verify(raw string) (*AuthClaims, error) {
	if len(c.secret) == 0 {
		return nil, fmt.Errorf("%w: jwt secret is not configured", ErrNotAuthorized)
	}
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrNotAuthorized)
	}
	if err := c.validate.Struct(claims); err != nil {
		return nil, fmt.Errorf("%w: claims: %v", ErrNotAuthorized, err)
	}
	return claims, nil
}
