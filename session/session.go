// Package session holds the signed-in user and the selected calendar day as
// plain values. They are read from and written to cookies only at the HTTP
// boundary.
package session

import (
	"net/http"
	"time"

	"github.com/fitdiary/backend/utils"
)

const (
	TokenCookie = "token"
	DateCookie  = "date"

	dateLayout = "2006-01-02"
)

// Auth is the current session. A zero Auth means signed out.
type Auth struct {
	User      *utils.PublicUser
	Token     string
	ExpiresAt time.Time
}

func NewAuth(token string, claims *utils.AuthClaims) Auth {
	user := claims.User()
	a := Auth{User: &user, Token: token}
	if claims.ExpiresAt != nil {
		a.ExpiresAt = claims.ExpiresAt.Time
	}
	return a
}

func (a Auth) SignedIn() bool { return a.User != nil }

// Cookie stores the token until it expires.
func (a Auth) Cookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    a.Token,
		Path:     "/",
		Expires:  a.ExpiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// AuthFromRequest restores the session from the token cookie. Missing,
// expired or forged tokens yield a signed-out session.
func AuthFromRequest(r *http.Request, codec *utils.TokenCodec) Auth {
	c, err := r.Cookie(TokenCookie)
	if err != nil || c.Value == "" {
		return Auth{}
	}
	claims, err := codec.Verify(c.Value)
	if err != nil {
		return Auth{}
	}
	return NewAuth(c.Value, claims)
}

// Date is the calendar day the client is looking at, at local midnight.
type Date struct {
	Date time.Time
}

func Today(now time.Time, loc *time.Location) Date {
	n := now.In(loc)
	return Date{Date: time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, loc)}
}

func (d Date) String() string { return d.Date.Format(dateLayout) }

// Cookie stores the date until the end of now's local day.
func (d Date) Cookie(now time.Time, secure bool) *http.Cookie {
	endOfDay := Today(now, d.Date.Location()).Date.AddDate(0, 0, 1)
	return &http.Cookie{
		Name:     DateCookie,
		Value:    d.String(),
		Path:     "/",
		Expires:  endOfDay,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// DateFromRequest reads the date cookie, falling back to today.
func DateFromRequest(r *http.Request, now time.Time, loc *time.Location) Date {
	if c, err := r.Cookie(DateCookie); err == nil {
		if t, err := time.ParseInLocation(dateLayout, c.Value, loc); err == nil {
			return Date{Date: t}
		}
	}
	return Today(now, loc)
}

// ClearCookies expires both session cookies.
func ClearCookies(secure bool) []*http.Cookie {
	out := make([]*http.Cookie, 0, 2)
	for _, name := range []string{TokenCookie, DateCookie} {
		out = append(out, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HttpOnly: name == TokenCookie,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return out
}
