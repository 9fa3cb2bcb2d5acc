package constants

// Standard Response Field Keys
const (
	ResponseFieldSuccess = "success"
	ResponseFieldData    = "data"
	ResponseFieldCode    = "code"
	ResponseFieldMessage = "message"
	ResponseFieldDetails = "details"
)

// BuildErrorResponse builds the error envelope returned by every failing endpoint
func BuildErrorResponse(code, message string, details any) map[string]any {
	response := map[string]any{
		ResponseFieldSuccess: false,
		ResponseFieldCode:    code,
		ResponseFieldMessage: message,
	}

	if details != nil {
		response[ResponseFieldDetails] = details
	}

	return response
}

// BuildDataResponse wraps a single resource
func BuildDataResponse(data any) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldData:    data,
	}
}

// BuildSuccessResponse returns a message-only success body
func BuildSuccessResponse(message string) map[string]any {
	return map[string]any{
		ResponseFieldSuccess: true,
		ResponseFieldMessage: message,
	}
}
