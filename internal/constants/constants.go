package constants

// Session
const (
	SessionCookieName = "blog_session"
	ContextKeyUserID  = "user_id"
)

// Validation
const (
	MinPasswordLength = 8
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MaxTitleLength    = 200
	MaxSubjectLength  = 200
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 6
	MaxPageSize     = 50
)
