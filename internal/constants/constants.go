package constants

// Session
const (
	SessionCookieName = "ergo_session"
	ContextKeyUserID  = "user_id"
)

// Validation bounds
const (
	MinPasswordLength = 8

	MinProjectNameLength        = 3
	MaxProjectNameLength        = 100
	MaxProjectDescriptionLength = 500

	MinTaskNameLength = 3
	MaxTaskNameLength = 150
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
