package constants

import "time"

const (
	SessionCookieName = "token"
	SessionContextKey = "session"
	SessionDefaultTTL = 7 * 24 * time.Hour
)

const PostPageSize = 20
