package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ufukozendev/noobgg-sub002/config"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	apperrors "github.com/ufukozendev/noobgg-sub002/internal/errors"
	"github.com/ufukozendev/noobgg-sub002/internal/handler"
	"github.com/ufukozendev/noobgg-sub002/internal/middleware"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Timeout: 5 * time.Second},
		Auth:      config.AuthConfig{JWTSecret: "router-test-secret"},
		RateLimit: config.RateLimitConfig{Request: 1000, Duration: 60},
		API: config.APIConfig{
			Version:      "1",
			LegacySunset: time.Date(2026, time.December, 31, 23, 59, 59, 0, time.UTC),
		},
		Locale: config.LocaleConfig{Default: "en", Supported: []string{"tr", "en"}},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// newTestEngine mounts every route. Resource handlers are zero values, so
// only requests rejected before reaching a handler are exercised here.
func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	v, err := validation.New(cfg.Locale.Default)
	require.NoError(t, err)

	handlers := Handlers{
		Games:        &handler.GameHandler{},
		Platforms:    &handler.PlatformHandler{},
		Distributors: &handler.DistributorHandler{},
		Languages:    &handler.LanguageHandler{},
		GameRanks:    &handler.GameRankHandler{},
		Events:       &handler.EventHandler{},
		Lobbies:      &handler.LobbyHandler{},
		UserProfiles: &handler.UserProfileHandler{},
		Health:       handler.NewHealthHandler(okPinger{}, nil),
	}
	auth := middleware.NewAuthMiddleware(service.NewTokenService(cfg.Auth))
	return NewRouter(handlers, auth, v, cfg).SetupRoutes()
}

func TestRouter_WritesRequireAuth(t *testing.T) {
	r := newTestEngine(t)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/api/v1/games"},
		{http.MethodPut, "/api/v1/platforms/1"},
		{http.MethodDelete, "/api/v1/distributors/1"},
		{http.MethodPost, "/api/v1/languages"},
		{http.MethodPost, "/api/v1/game-ranks"},
		{http.MethodPut, "/api/v1/events/3"},
		{http.MethodPost, "/api/v1/lobbies"},
		{http.MethodPost, "/api/v1/lobbies/1/join"},
		{http.MethodPost, "/api/v1/lobbies/1/leave"},
		{http.MethodPut, "/api/v1/lobbies/1"},
		{http.MethodGet, "/api/v1/user-profiles/me"},
		{http.MethodDelete, "/api/v1/user-profiles/2"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(rt.method, rt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRouter_DeprecatedAlias(t *testing.T) {
	r := newTestEngine(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/gameranks", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "true", w.Header().Get(constants.HeaderDeprecation))
	assert.Equal(t, "Thu, 31 Dec 2026 23:59:59 GMT", w.Header().Get(constants.HeaderSunset))
	assert.Equal(t, `</api/v1/game-ranks>; rel="successor-version"`, w.Header().Get(constants.HeaderLink))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/game-ranks", nil))
	assert.Empty(t, w.Header().Get(constants.HeaderDeprecation))
}

func TestRouter_Ambient(t *testing.T) {
	r := newTestEngine(t)

	t.Run("unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apperrors.CodeNotFound, body["code"])
		assert.Equal(t, constants.MsgRouteNotFound, body["message"])
	})

	t.Run("health", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1", w.Header().Get(constants.HeaderAPIVersion))
		assert.Equal(t, "en", w.Header().Get(constants.HeaderContentLanguage))
		assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "noobgg_http_requests_total")
	})

	t.Run("unsupported api version", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/games", nil)
		req.Header.Set(constants.HeaderAPIVersion, "2")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSupportedLocales_DefaultFirst(t *testing.T) {
	r := &Router{Config: testConfig()}
	assert.Equal(t, []string{"en", "tr"}, r.supportedLocales())
}
