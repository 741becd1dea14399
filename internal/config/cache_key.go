package config

import (
	"fmt"
	"strings"
)

const cacheKeyPrefix = "max-app"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ResourceKey returns the cache key for one resource of a user.
// Optional qualifiers (date range, teacher id) are appended with dashes.
func (r *CacheKeyStruct) ResourceKey(resource, userID string, qualifiers ...string) string {
	key := fmt.Sprintf("%s-%s-%s", cacheKeyPrefix, resource, userID)
	for _, q := range qualifiers {
		if q != "" {
			key += "-" + q
		}
	}
	return key
}

// IsResourceKey reports whether key belongs to the given resource of the user.
func (r *CacheKeyStruct) IsResourceKey(key, resource, userID string) bool {
	base := r.ResourceKey(resource, userID)
	return key == base || strings.HasPrefix(key, base+"-")
}

// NavigationKey returns the key holding a user's page-history stack.
func (r *CacheKeyStruct) NavigationKey(userID string) string {
	return fmt.Sprintf("%s-nav-%s", cacheKeyPrefix, userID)
}

var CacheKey = NewCacheKeyStruct()
