package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// AdminSessionKey returns the cache key for an admin's login session (JWT jti).
func (r *CacheKeyStruct) AdminSessionKey(adminID int) string {
	return fmt.Sprintf("admin:%d:session", adminID)
}

// TestPayloadKey returns the cache key for a test's candidate-facing payload.
// The cached payload never contains answer keys.
func (r *CacheKeyStruct) TestPayloadKey(testID string) string {
	return fmt.Sprintf("test:%s:payload", testID)
}

var CacheKey = NewCacheKeyStruct()
