package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
	"github.com/ufukozendev/noobgg-sub002/internal/service"
	"github.com/ufukozendev/noobgg-sub002/pkg/logger"
	"github.com/ufukozendev/noobgg-sub002/pkg/pagination"
	"github.com/ufukozendev/noobgg-sub002/pkg/validation"
)

// FilterFunc reads resource-specific list filters from the query string.
// It writes the error response itself and returns false on bad input.
type FilterFunc func(c *gin.Context, v *validation.Validator, params *service.ListParams) bool

// ResourceHandler serves the five CRUD routes of a ResourceService.
// C and U are the create and update request bodies.
type ResourceHandler[T, R, C, U any] struct {
	svc       *service.ResourceService[T, R]
	validator *validation.Validator
	build     func(c *gin.Context, req *C) (*T, error)
	updates   func(req *U) map[string]interface{}
	filter    FilterFunc
}

func NewResourceHandler[T, R, C, U any](
	svc *service.ResourceService[T, R],
	v *validation.Validator,
	build func(c *gin.Context, req *C) (*T, error),
	updates func(req *U) map[string]interface{},
	filter FilterFunc,
) *ResourceHandler[T, R, C, U] {
	return &ResourceHandler[T, R, C, U]{svc: svc, validator: v, build: build, updates: updates, filter: filter}
}

func (h *ResourceHandler[T, R, C, U]) op(c *gin.Context, function string) {
	withOperation(c, h.svc.Name()+"."+function)
}

func (h *ResourceHandler[T, R, C, U]) List(c *gin.Context) {
	h.op(c, "List")

	params, ok := listParams(c, h.validator)
	if !ok {
		return
	}
	if h.filter != nil && !h.filter(c, h.validator, &params) {
		return
	}

	resp, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.DebugWithContext(c.Request.Context(), "List served").
		Int("page", params.Page.Page).
		Int("limit", params.Page.Limit).
		Int64("total", resp.Meta.TotalItems).
		Log()
	c.JSON(http.StatusOK, resp)
}

func (h *ResourceHandler[T, R, C, U]) Get(c *gin.Context) {
	h.op(c, "Get")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *ResourceHandler[T, R, C, U]) Create(c *gin.Context) {
	h.op(c, "Create")

	var req C
	if !bindJSON(c, h.validator, &req) {
		return
	}
	item, err := h.build(c, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), item)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, constants.BuildDataResponse(resp))
}

func (h *ResourceHandler[T, R, C, U]) Update(c *gin.Context) {
	h.op(c, "Update")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	var req U
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), id, h.updates(&req))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildDataResponse(resp))
}

func (h *ResourceHandler[T, R, C, U]) Delete(c *gin.Context) {
	h.op(c, "Delete")

	id, ok := parseID(c, h.validator)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgDeleted))
}

// listParams reads pagination, sorting and free-text search
func listParams(c *gin.Context, v *validation.Validator) (service.ListParams, bool) {
	search := strings.TrimSpace(c.Query(constants.QueryParamSearch))
	if len(search) > constants.MaxSearchLength {
		respondValidation(c, v, validation.FieldErrors{
			constants.QueryParamSearch: validation.DefaultMessage(locale(c), constants.QueryParamSearch, "max"),
		})
		return service.ListParams{}, false
	}
	return service.ListParams{
		Page:    pagination.FromQuery(c),
		Search:  search,
		Filters: map[string]string{},
	}, true
}
