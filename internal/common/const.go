package common

const (
	// AuthorizationHeaderName is the header carrying the bearer credential.
	AuthorizationHeaderName = "Authorization"

	// BearerPrefix precedes the token in AuthorizationHeaderName.
	BearerPrefix = "Bearer "
)
