package constants

import "time"

const (
	CacheKeyPostList       = "recipe:posts:list"         // hash, field 为页码
	CacheKeySessionRevoked = "recipe:session:revoked:%s" // %s -> jti
)

const (
	CacheExpirePostList = 10 * time.Minute
)
