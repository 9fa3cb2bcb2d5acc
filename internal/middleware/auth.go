package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"go.uber.org/zap"
)

// TokenVerifier validates a bearer token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*service.Claims, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
}

func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth accepts "Authorization: Bearer <token>" and stores the token
// subject as the caller's user key
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		scheme, token, found := strings.Cut(c.GetHeader(constants.HeaderAuthorization), " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			logger.WarnWithContext(ctx, "Missing or malformed Authorization header").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Log()
			unauthorized(c, apperrors.ErrUnauthorized)
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			logger.WarnWithContext(ctx, "Bearer token rejected").
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Err(err).
				Log()
			unauthorized(c, apperrors.ErrInvalidToken)
			return
		}

		logger.LogAuth(claims.Subject, "verify_token", true, zap.String("request_id", ctxutil.GetRequestID(ctx)))
		c.Set(constants.GinKeyUserKey, claims.Subject)
		c.Request = c.Request.WithContext(ctxutil.WithUserKey(ctx, claims.Subject))

		c.Next()
	}
}

func unauthorized(c *gin.Context, err *apperrors.DomainError) {
	c.Header("WWW-Authenticate", `Bearer realm="noobgg"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		constants.BuildErrorResponse(err.Code, err.Message, nil))
}
