package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitdiary/backend/utils"
)

func TestAuthRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	codec := utils.NewTokenCodec([]byte("secret"), time.Hour).WithClock(func() time.Time { return now })
	token, claims, err := codec.Issue(utils.PublicUser{ID: "u1", Email: "jane@example.com", Name: "Jane"})
	require.NoError(t, err)

	auth := NewAuth(token, claims)
	c := auth.Cookie(true)
	assert.Equal(t, TokenCookie, c.Name)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, now.Add(time.Hour).Unix(), c.Expires.Unix())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	got := AuthFromRequest(req, codec)
	require.True(t, got.SignedIn())
	assert.Equal(t, "jane@example.com", got.User.Email)
	assert.Equal(t, token, got.Token)
}

func TestAuthFromRequestRejectsBadTokens(t *testing.T) {
	codec := utils.NewTokenCodec([]byte("secret"), time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, AuthFromRequest(req, codec).SignedIn())

	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
	assert.False(t, AuthFromRequest(req, codec).SignedIn())
}

func TestDateCookieExpiresAtEndOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+8", 8*3600)
	now := time.Date(2024, 3, 10, 21, 15, 0, 0, loc)

	d := Date{Date: time.Date(2024, 3, 2, 0, 0, 0, 0, loc)}
	c := d.Cookie(now, false)
	assert.Equal(t, "2024-03-02", c.Value)
	assert.True(t, c.Expires.Equal(time.Date(2024, 3, 11, 0, 0, 0, 0, loc)))
}

func TestDateFromRequest(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, loc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "2024-03-10", DateFromRequest(req, now, loc).String())

	req.AddCookie(&http.Cookie{Name: DateCookie, Value: "2024-02-29"})
	assert.Equal(t, "2024-02-29", DateFromRequest(req, now, loc).String())

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: DateCookie, Value: "yesterday"})
	assert.Equal(t, "2024-03-10", DateFromRequest(bad, now, loc).String())
}

func TestClearCookies(t *testing.T) {
	cookies := ClearCookies(false)
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		assert.Equal(t, -1, c.MaxAge)
		assert.Empty(t, c.Value)
	}
}
