package common

const (
	// AuthorizationHeaderName carries the bearer access token on HTTP requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme is the token type returned to clients and expected in
	// the Authorization header.
	BearerScheme = "bearer"

	// ServiceName is reported by the status endpoints and the gRPC health service.
	ServiceName = "settingskeeper"

	// ServiceVersion is reported by the root status endpoint.
	ServiceVersion = "1.0.0"
)
