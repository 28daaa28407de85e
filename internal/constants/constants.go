package constants

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "taskboard_session"

	// ContextKeyUserID is the key used for the authenticated user ID,
	// both in the session store and in the gin context.
	ContextKeyUserID = "user_id"

	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
)

// Pagination bounds for list endpoints.
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
