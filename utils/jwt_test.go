package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jane = PublicUser{ID: "u1", Email: "jane@example.com", Name: "Jane"}

func fixedCodec(now time.Time) *TokenCodec {
	return NewTokenCodec([]byte("s3cret"), time.Hour).WithClock(func() time.Time { return now })
}

func TestTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	codec := fixedCodec(now)

	token, issued, err := codec.Issue(jane)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour).Unix(), issued.ExpiresAt.Unix())

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, jane, claims.User())
	assert.Equal(t, now.Unix(), claims.IssuedAt.Unix())
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	token, _, err := fixedCodec(now).Issue(jane)
	require.NoError(t, err)

	_, err = fixedCodec(now.Add(61 * time.Minute)).Verify(token)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestTokenTampered(t *testing.T) {
	codec := fixedCodec(time.Now())
	token, _, err := codec.Issue(jane)
	require.NoError(t, err)

	_, err = NewTokenCodec([]byte("other"), time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	parts := strings.Split(token, ".")
	parts[2] = strings.Repeat("A", len(parts[2]))
	_, err = codec.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestTokenRejectsOtherAlgorithms(t *testing.T) {
	now := time.Now()
	claims := &AuthClaims{
		UserID: "u1",
		Email:  "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("s3cret"))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	codec := NewTokenCodec([]byte("s3cret"), time.Hour)
	for _, token := range []string{hs512, none, "", "garbage"} {
		_, err := codec.Verify(token)
		assert.ErrorIs(t, err, ErrNotAuthorized, token)
	}
}

func TestTokenRequiresClaims(t *testing.T) {
	now := time.Now()
	sign := func(c jwt.Claims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("s3cret"))
		require.NoError(t, err)
		return s
	}
	codec := NewTokenCodec([]byte("s3cret"), time.Hour)

	noExp := sign(&AuthClaims{UserID: "u1", Email: "jane@example.com"})
	_, err := codec.Verify(noExp)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	noID := sign(&AuthClaims{Email: "jane@example.com", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}})
	_, err = codec.Verify(noID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestTokenWithoutSecret(t *testing.T) {
	codec := NewTokenCodec(nil, 0)
	assert.Equal(t, DefaultTokenTTL, codec.TTL())
	_, _, err := codec.Issue(jane)
	assert.Error(t, err)
	_, err = codec.Verify("x.y.z")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}
