package constants

// Pagination Query Parameters
const (
	QueryParamPage      = "page"
	QueryParamLimit     = "limit"
	QueryParamSearch    = "search"
	QueryParamSortBy    = "sortBy"
	QueryParamSortOrder = "sortOrder"
)

// Default Pagination Values
const (
	DefaultPage   = 1
	DefaultLimit  = 20
	DefaultSearch = ""
)

// Pagination Limits
const (
	MinPage  = 1
	MinLimit = 1
	MaxLimit = 100
)

// Sort Orders
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)
