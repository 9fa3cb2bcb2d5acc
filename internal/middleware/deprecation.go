package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

// Deprecation marks a legacy route: Deprecation, Sunset (HTTP-date) and a
// Link to the successor. legacyPrefix in the request path is rewritten to
// successorPrefix to build the link.
func Deprecation(legacyPrefix, successorPrefix string, sunset time.Time) gin.HandlerFunc {
	sunsetHeader := ""
	if !sunset.IsZero() {
		sunsetHeader = sunset.UTC().Format(http.TimeFormat)
	}

	return func(c *gin.Context) {
		successor := successorPrefix + strings.TrimPrefix(c.Request.URL.Path, legacyPrefix)

		c.Header(constants.HeaderDeprecation, "true")
		if sunsetHeader != "" {
			c.Header(constants.HeaderSunset, sunsetHeader)
		}
		c.Header(constants.HeaderLink, "<"+successor+`>; rel="successor-version"`)

		logger.DebugWithContext(c.Request.Context(), "Deprecated route used").
			Path(c.Request.URL.Path).
			String("successor", successor).
			Log()

		c.Next()
	}
}
