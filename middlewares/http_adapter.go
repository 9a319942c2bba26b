package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// WrapHTTP runs a net/http middleware inside the gin chain. The middleware
// may replace the request (for example to add context values) but must
// write through the writer it was given; a replaced writer is not seen by
// later gin handlers. If it never calls next, the chain is aborted.
func WrapHTTP(mw func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		called := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			called = true
			c.Request = r
			c.Next()
		})
		mw(next).ServeHTTP(c.Writer, c.Request)
		if !called {
			c.Abort()
		}
	}
}
