package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MaxJSONBody caps ordinary API request bodies.
const MaxJSONBody = 64 << 10

// LimitBody stops reading the request body after n bytes, so oversized
// payloads fail while binding instead of being buffered whole.
func LimitBody(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
