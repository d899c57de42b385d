package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AuthRateLimitKey returns the Redis key counting auth requests from an IP
// within the current rate-limit window.
func (r *CacheKeyStruct) AuthRateLimitKey(ip string) string {
	return fmt.Sprintf("ratelimit:auth:%s", ip)
}

var CacheKey = NewCacheKeyStruct()
