package middleware

import (
	"tl-payroll/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
)

// RequestID assigns a request id (honoring an incoming X-Request-ID) and
// propagates it through both the gin context and the standard context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = contextutil.NewRequestID()
		}

		c.Set("request_id", rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		c.Header("X-Request-ID", rid)
		c.Next()
	}
}
