package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" on authenticated requests.
	AuthorizationHeaderName = "Authorization"

	// TokenFieldName is the query parameter and JSON body field that may carry
	// the token when no Authorization header is sent.
	TokenFieldName = "_token"

	// RequestIDHeaderName echoes the per-request id back to the caller.
	RequestIDHeaderName = "X-Request-ID"
)
