package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

const slowRequestThreshold = 2 * time.Second

// Logging writes one structured line per request. Level follows the status:
// 5xx errors, 4xx and slow requests warn, everything else is info.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		ctx := c.Request.Context()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		var entry *logger.ContextLogBuilder
		switch {
		case status >= http.StatusInternalServerError:
			entry = logger.ErrorWithContext(ctx, "Server error")
		case status >= http.StatusBadRequest:
			entry = logger.WarnWithContext(ctx, "Client error")
		case latency > slowRequestThreshold:
			entry = logger.WarnWithContext(ctx, "Slow request")
		default:
			entry = logger.InfoWithContext(ctx, "Request completed")
		}

		entry = entry.
			Method(c.Request.Method).
			Path(path).
			StatusCode(status).
			Duration(latency).
			String("query", c.Request.URL.RawQuery).
			Int("response_size", c.Writer.Size())
		if msg := c.Errors.ByType(gin.ErrorTypePrivate).String(); msg != "" {
			entry = entry.String("error", msg)
		}
		entry.Log()
	}
}

// Recovery turns a panic into the INTERNAL_ERROR envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.ErrorWithContext(c.Request.Context(), "Request aborted by panic").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			Log()
		logger.LogPanic(recovered)

		c.AbortWithStatusJSON(http.StatusInternalServerError,
			constants.BuildErrorResponse(apperrors.CodeInternal, constants.MsgInternalError, nil))
	})
}
