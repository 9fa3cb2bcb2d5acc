package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/handler"
	"github.com/ufukozendev/noobgg-sub002/internal/middleware"
	"github.com/ufukozendev/noobgg-sub002/pkg/metrics"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Games        *handler.GameHandler
	Platforms    *handler.PlatformHandler
	Distributors *handler.DistributorHandler
	Languages    *handler.LanguageHandler
	GameRanks    *handler.GameRankHandler
	Events       *handler.EventHandler
	Lobbies      *handler.LobbyHandler
	UserProfiles *handler.UserProfileHandler
	Health       *handler.HealthHandler
}

type Router struct {
	handlers  Handlers
	authMw    *middleware.AuthMiddleware
	validator *validation.Validator
	Config    *config.Config
}

func NewRouter(handlers Handlers, authMw *middleware.AuthMiddleware, v *validation.Validator, cfg *config.Config) *Router {
	return &Router{
		handlers:  handlers,
		authMw:    authMw,
		validator: v,
		Config:    cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestContext())
	router.Use(middleware.Logging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(r.Config.CORS.AllowedOrigins))
	router.Use(middleware.APIVersion(r.Config.API.Version))
	router.Use(middleware.Locale(r.validator, r.supportedLocales()))
	router.Use(middleware.Timeout(r.Config.App.Timeout))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(apperrors.CodeNotFound, constants.MsgRouteNotFound, nil))
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", r.handlers.Health.HealthCheck)

		v1 := api.Group("/v1")
		{
			limiter := middleware.NewRateLimiter(r.Config.RateLimit.Request, time.Duration(r.Config.RateLimit.Duration)*time.Second)
			v1.Use(middleware.RateLimit(limiter))

			r.catalogRoutes(v1)
			r.eventRoutes(v1)
			r.lobbyRoutes(v1)
			r.userProfileRoutes(v1)
		}
	}

	return router
}

// supportedLocales puts the default locale first so it wins negotiation ties
func (r *Router) supportedLocales() []string {
	out := []string{r.Config.Locale.Default}
	for _, l := range r.Config.Locale.Supported {
		if l != r.Config.Locale.Default {
			out = append(out, l)
		}
	}
	return out
}
