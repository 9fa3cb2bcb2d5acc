package constants

// HTTP Header Names
const (
	HeaderContentType     = "Content-Type"
	HeaderAuthorization   = "Authorization"
	HeaderUserAgent       = "User-Agent"
	HeaderXRequestID      = "X-Request-ID"
	HeaderXForwardedFor   = "X-Forwarded-For"
	HeaderXRealIP         = "X-Real-IP"
	HeaderCFConnectingIP  = "CF-Connecting-IP"
	HeaderAPIVersion      = "X-API-Version"
	HeaderAcceptLanguage  = "Accept-Language"
	HeaderContentLanguage = "Content-Language"
	HeaderDeprecation     = "Deprecation"
	HeaderSunset          = "Sunset"
	HeaderLink            = "Link"
	HeaderRetryAfter      = "Retry-After"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain"
)

// Bearer scheme prefix in the Authorization header
const BearerPrefix = "Bearer "

// Common HTTP Error Messages
const (
	MsgUnauthorized       = "Unauthorized access"
	MsgForbidden          = "Access forbidden"
	MsgNotFound           = "Resource not found"
	MsgBadRequest         = "Invalid request"
	MsgInternalError      = "Internal server error"
	MsgServiceUnavailable = "Service temporarily unavailable"
	MsgConflict           = "Resource already exists"
	MsgRouteNotFound      = "Route not found"
	MsgTooManyRequests    = "Too many requests"
)

// HTTP Success Messages
const (
	MsgDeleted = "Resource deleted successfully"
	MsgLeft    = "Left lobby successfully"
)
