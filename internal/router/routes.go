package router

import (
	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/middleware"
)

// crudHandler is the five-route surface shared by every resource
type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// crudRoutes mounts reads publicly and writes behind bearer auth
func (r *Router) crudRoutes(rg *gin.RouterGroup, h crudHandler) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)

	protected := rg.Group("")
	protected.Use(r.authMw.RequireAuth())
	{
		protected.POST("", h.Create)
		protected.PUT("/:id", h.Update)
		protected.DELETE("/:id", h.Delete)
	}
}

func (r *Router) catalogRoutes(rg *gin.RouterGroup) {
	r.crudRoutes(rg.Group("/games"), r.handlers.Games)
	r.crudRoutes(rg.Group("/platforms"), r.handlers.Platforms)
	r.crudRoutes(rg.Group("/distributors"), r.handlers.Distributors)
	r.crudRoutes(rg.Group("/languages"), r.handlers.Languages)
	r.crudRoutes(rg.Group("/game-ranks"), r.handlers.GameRanks)

	// Legacy spelling kept for older clients until the sunset date
	legacy := rg.Group("/gameranks")
	legacy.Use(middleware.Deprecation(legacy.BasePath(), rg.BasePath()+"/game-ranks", r.Config.API.LegacySunset))
	r.crudRoutes(legacy, r.handlers.GameRanks)
}

func (r *Router) eventRoutes(rg *gin.RouterGroup) {
	r.crudRoutes(rg.Group("/events"), r.handlers.Events)
}

func (r *Router) lobbyRoutes(rg *gin.RouterGroup) {
	lobbies := rg.Group("/lobbies")
	r.crudRoutes(lobbies, r.handlers.Lobbies)
	lobbies.GET("/:id/members", r.handlers.Lobbies.Members)

	protected := lobbies.Group("")
	protected.Use(r.authMw.RequireAuth())
	{
		protected.POST("/:id/join", r.handlers.Lobbies.Join)
		protected.POST("/:id/leave", r.handlers.Lobbies.Leave)
	}
}

func (r *Router) userProfileRoutes(rg *gin.RouterGroup) {
	profiles := rg.Group("/user-profiles")
	profiles.GET("/me", r.authMw.RequireAuth(), r.handlers.UserProfiles.Me)
	r.crudRoutes(profiles, r.handlers.UserProfiles)
}
