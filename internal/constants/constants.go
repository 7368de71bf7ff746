package constants

// Context keys used to pass the authenticated identity between middleware and handlers
const (
	ContextKeyUserID      = "user_id"
	ContextKeyUsername    = "username"
	ContextKeyAccountType = "account_type"
)

// Pagination bounds
const (
	DefaultPage     = 1
	DefaultPageSize = 5
	MaxPageSize     = 100
)

// Token lifetimes in seconds
const (
	AuthTokenTTLSeconds    = 1800
	RefreshTokenTTLSeconds = 86400
)
