package pagination

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ufukozendev/noobgg-sub002/internal/constants"
)

// Request is the normalized form of the page/limit/sort query parameters.
// Page >= 1 and MinLimit <= Limit <= MaxLimit always hold for values built by Normalize.
type Request struct {
	Page      int    `json:"page"`
	Limit     int    `json:"limit"`
	SortBy    string `json:"sortBy,omitempty"`
	SortOrder string `json:"sortOrder"`
}

// Meta describes where a page sits inside the full result set
type Meta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalItems      int64 `json:"totalItems"`
	ItemsPerPage    int   `json:"itemsPerPage"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// Response is the list envelope returned by every collection endpoint
type Response[T any] struct {
	Success bool `json:"success"`
	Data    []T  `json:"data"`
	Meta    Meta `json:"meta"`
}

// Normalize turns raw page/limit strings into a bounded Request.
// An empty string means the parameter was absent. It never fails.
func Normalize(rawPage, rawLimit string) Request {
	page, err := strconv.Atoi(rawPage)
	if err != nil || page < constants.MinPage {
		page = constants.DefaultPage
	}

	limit, err := strconv.Atoi(rawLimit)
	switch {
	case err != nil, limit < constants.MinLimit:
		limit = constants.DefaultLimit
	case limit > constants.MaxLimit:
		limit = constants.MaxLimit
	}

	return Request{
		Page:      page,
		Limit:     limit,
		SortOrder: constants.OrderDesc,
	}
}

// NormalizeSort applies the sort parameters to an already normalized request.
// sortBy is kept as-is (trimmed); its meaning belongs to the entity being listed.
func NormalizeSort(req Request, rawSortBy, rawSortOrder string) Request {
	req.SortBy = strings.TrimSpace(rawSortBy)

	switch strings.ToLower(strings.TrimSpace(rawSortOrder)) {
	case constants.OrderAsc:
		req.SortOrder = constants.OrderAsc
	default:
		req.SortOrder = constants.OrderDesc
	}
	return req
}

// FromQuery reads page, limit, sortBy and sortOrder from the request query string
func FromQuery(c *gin.Context) Request {
	req := Normalize(c.Query(constants.QueryParamPage), c.Query(constants.QueryParamLimit))
	return NormalizeSort(req, c.Query(constants.QueryParamSortBy), c.Query(constants.QueryParamSortOrder))
}

// Offset returns the number of rows to skip, saturating at math.MaxInt
func (r Request) Offset() int {
	if r.Page <= 1 || r.Limit <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.Limit {
		return math.MaxInt
	}
	return (r.Page - 1) * r.Limit
}

// Ascending reports whether the request asks for ascending order
func (r Request) Ascending() bool {
	return r.SortOrder == constants.OrderAsc
}

// NewMeta computes the page metadata for a result set of totalItems rows
func NewMeta(totalItems int64, req Request) Meta {
	if totalItems < 0 {
		totalItems = 0
	}
	perPage := req.Limit
	if perPage < constants.MinLimit {
		perPage = constants.DefaultLimit
	}

	totalPages := int(totalItems / int64(perPage))
	if totalItems%int64(perPage) != 0 {
		totalPages++
	}

	return Meta{
		CurrentPage:     req.Page,
		TotalPages:      totalPages,
		TotalItems:      totalItems,
		ItemsPerPage:    perPage,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}
}

// BuildResponse wraps one page of items into the list envelope.
// Items are not truncated; the data layer is expected to fetch at most req.Limit rows.
func BuildResponse[T any](items []T, totalItems int64, req Request) Response[T] {
	if items == nil {
		items = []T{}
	}
	return Response[T]{
		Success: true,
		Data:    items,
		Meta:    NewMeta(totalItems, req),
	}
}

// Map converts the items of a response while keeping its metadata
func Map[T, U any](in Response[T], fn func(T) U) Response[U] {
	out := make([]U, 0, len(in.Data))
	for _, item := range in.Data {
		out = append(out, fn(item))
	}
	return Response[U]{Success: in.Success, Data: out, Meta: in.Meta}
}
