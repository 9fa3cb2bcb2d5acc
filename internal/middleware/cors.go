package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

var (
	corsAllowHeaders = strings.Join([]string{
		constants.HeaderContentType,
		constants.HeaderAuthorization,
		constants.HeaderAcceptLanguage,
		constants.HeaderAPIVersion,
		constants.HeaderXRequestID,
		"Accept",
		"Origin",
		"Cache-Control",
		"X-Requested-With",
	}, ", ")
	corsExposeHeaders = strings.Join([]string{
		constants.HeaderAPIVersion,
		constants.HeaderContentLanguage,
		constants.HeaderXRequestID,
		constants.HeaderDeprecation,
		constants.HeaderSunset,
		constants.HeaderLink,
		constants.HeaderRetryAfter,
	}, ", ")
)

// CORS answers cross-origin requests from allowedOrigins. A "*" entry
// allows any origin, without credentials.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		if o == "*" {
			wildcard = true
			continue
		}
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Add("Vary", "Origin")
		if _, ok := allowed[origin]; ok {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
		} else if wildcard {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			logger.DebugWithContext(c.Request.Context(), "CORS origin not allowed").
				String("origin", origin).
				Path(c.Request.URL.Path).
				Log()
		}
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
