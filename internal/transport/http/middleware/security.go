package middleware

import "github.com/gin-gonic/gin"

// Security sets response headers shared by every API route. Responses may
// carry session tokens, so nothing is cacheable.
func Security() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Cache-Control", "no-store")
		h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		h.Set("Access-Control-Expose-Headers", AuthHeader)
		c.Next()
	}
}
