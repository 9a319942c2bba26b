package middlewares

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitdiary/backend/utils"
)

// ClaimsKey is the gin context key verified claims are stored under.
const ClaimsKey = "authClaims"

// Authorize verifies the "Authorization: Bearer <token>" header and stores
// the claims on c. Every failure wraps utils.ErrNotAuthorized.
func Authorize(c *gin.Context, codec *utils.TokenCodec) (*utils.AuthClaims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("%w: authorization header required", utils.ErrNotAuthorized)
	}
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || scheme != "Bearer" || token == "" || strings.ContainsAny(token, " \t") {
		return nil, fmt.Errorf("%w: malformed authorization header", utils.ErrNotAuthorized)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		return nil, err
	}
	c.Set(ClaimsKey, claims)
	return claims, nil
}

// ClaimsFrom returns the claims Authorize stored, if any.
func ClaimsFrom(c *gin.Context) (*utils.AuthClaims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*utils.AuthClaims)
	return claims, ok
}
