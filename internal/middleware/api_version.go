package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
)

// APIVersion stamps every response with X-API-Version. A request that asks
// for another version is rejected with UNSUPPORTED_API_VERSION; "v1" and
// "1" name the same version.
func APIVersion(version string) gin.HandlerFunc {
	version = normalizeVersion(version)

	return func(c *gin.Context) {
		c.Header(constants.HeaderAPIVersion, version)

		requested := c.GetHeader(constants.HeaderAPIVersion)
		if requested != "" && normalizeVersion(requested) != version {
			logger.InfoWithContext(c.Request.Context(), "Unsupported API version requested").
				String("requested_version", requested).
				String("supported_version", version).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest, constants.BuildErrorResponse(
				apperrors.CodeUnsupportedVersion,
				apperrors.ErrUnsupportedVersion.Message,
				map[string]string{"supported": version},
			))
			return
		}

		c.Next()
	}
}

func normalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	return strings.TrimPrefix(strings.ToLower(v), "v")
}
