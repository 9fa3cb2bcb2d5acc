package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

// maxRequestIDLength bounds client supplied request ids echoed back in logs
const maxRequestIDLength = 128

// RequestContext seeds the request context with the request id, client ip
// and start time. A missing or oversized X-Request-ID is replaced by a uuid.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if len(requestID) > maxRequestIDLength {
			requestID = ""
		}

		ctx := ctxutil.NewRequestContext(c.Request.Context(), requestID, c.ClientIP(), c.Request.UserAgent())
		c.Request = c.Request.WithContext(ctx)
		c.Header(constants.HeaderXRequestID, ctxutil.GetRequestID(ctx))

		c.Next()
	}
}

// Timeout bounds the request context. Handlers observe it through the
// context passed to services and repositories.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}

		ctx, cancel := ctxutil.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() != nil {
			logger.WarnWithContext(ctx, "Request exceeded its deadline").
				Method(c.Request.Method).
				Path(c.FullPath()).
				Duration(timeout).
				Log()
		}
	}
}
