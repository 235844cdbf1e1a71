package utils

// Header names shared by handlers and middleware.
const (
	AuthorizationHeader = "Authorization"
	BearerPrefix        = "Bearer "
)

// Context keys set by the admin middleware.
const (
	ContextAdminUID   = "adminUID"
	ContextAdminEmail = "adminEmail"
)
