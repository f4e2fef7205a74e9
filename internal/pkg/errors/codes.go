package errors

// Error codes returned in the "code" field of error responses.
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeNoContent      = "NO_CONTENT"
	CodeConflict       = "CONFLICT"
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeUpstreamError  = "UPSTREAM_ERROR"
	CodeDatabaseError  = "DATABASE_ERROR"
	CodeCacheError     = "CACHE_ERROR"
	CodeInternalServer = "INTERNAL_SERVER_ERROR"
)
