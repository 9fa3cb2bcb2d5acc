package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/dto"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

type UserProfileHandler struct {
	profileService *service.UserProfileService
	validator      *validation.Validator
}

func NewUserProfileHandler(svc *service.UserProfileService, v *validation.Validator) *UserProfileHandler {
	return &UserProfileHandler{profileService: svc, validator: v}
}

func (h *UserProfileHandler) List(c *gin.Context) {
	withOperation(c, "user_profiles.List")

	params, ok := listParams(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.profileService.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UserProfileHandler) Get(c *gin.Context) {
	withOperation(c, "user_profiles.Get")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

// Me returns the caller's own profile
func (h *UserProfileHandler) Me(c *gin.Context) {
	withOperation(c, "user_profiles.Me")

	resp, err := h.profileService.GetMe(c.Request.Context(), userKey(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *UserProfileHandler) Create(c *gin.Context) {
	withOperation(c, "user_profiles.Create")

	var req dto.CreateUserProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	logger.InfoWithContext(c.Request.Context(), "Create profile request").String("username", req.Username).Log()

	resp, err := h.profileService.Create(c.Request.Context(), userKey(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(resp))
}

func (h *UserProfileHandler) Update(c *gin.Context) {
	withOperation(c, "user_profiles.Update")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	var req dto.UpdateUserProfileRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.profileService.Update(c.Request.Context(), userKey(c), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *UserProfileHandler) Delete(c *gin.Context) {
	withOperation(c, "user_profiles.Delete")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	if err := h.profileService.Delete(c.Request.Context(), userKey(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}
