package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	ctxutil "github.com/ufukozendev/noobgg-sub002/pkg/context"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

type LobbyHandler struct {
	lobbyService *service.LobbyService
	validator    *validation.Validator
}

func NewLobbyHandler(svc *service.LobbyService, v *validation.Validator) *LobbyHandler {
	return &LobbyHandler{lobbyService: svc, validator: v}
}

func withOperation(c *gin.Context, function string) {
	c.Request = c.Request.WithContext(ctxutil.WithOperation(c.Request.Context(), "handler", function))
}

func (h *LobbyHandler) List(c *gin.Context) {
	withOperation(c, "lobbies.List")

	params, ok := listParams(c, h.validator)
	if !ok || !lobbyFilter(c, h.validator, &params) {
		return
	}

	resp, err := h.lobbyService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *LobbyHandler) Get(c *gin.Context) {
	withOperation(c, "lobbies.Get")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.lobbyService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *LobbyHandler) Create(c *gin.Context) {
	withOperation(c, "lobbies.Create")

	var req dto.CreateLobbyRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	logger.InfoWithContext(c.Request.Context(), "Create lobby request").
		Uint("game_id", req.GameID).
		String("region", req.Region).
		Int("max_team_size", req.MaxTeamSize).
		Log()

	resp, err := h.lobbyService.Create(c.Request.Context(), userKey(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(resp))
}

// Update applies a partial update. A stale rowVersion yields 409 VERSION_CONFLICT.
func (h *LobbyHandler) Update(c *gin.Context) {
	withOperation(c, "lobbies.Update")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	var req dto.UpdateLobbyRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.lobbyService.Update(c.Request.Context(), userKey(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *LobbyHandler) Delete(c *gin.Context) {
	withOperation(c, "lobbies.Delete")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	if err := h.lobbyService.Delete(c.Request.Context(), userKey(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}

func (h *LobbyHandler) Join(c *gin.Context) {
	withOperation(c, "lobbies.Join")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.lobbyService.Join(c.Request.Context(), userKey(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(resp))
}

func (h *LobbyHandler) Leave(c *gin.Context) {
	withOperation(c, "lobbies.Leave")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	if err := h.lobbyService.Leave(c.Request.Context(), userKey(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLeft))
}

func (h *LobbyHandler) Members(c *gin.Context) {
	withOperation(c, "lobbies.Members")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.lobbyService.Members(c.Request.Context(), id, pagination.FromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
