package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the redis key holding the login session for a token ID.
func (r *CacheKeyStruct) SessionKey(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}

// UserSessionsKey returns the redis set of token IDs issued to a user.
func (r *CacheKeyStruct) UserSessionsKey(userID int64) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

var CacheKey = NewCacheKeyStruct()
