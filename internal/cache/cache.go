// Package cache memoises rendered text, such as glamour captions, for the
// lifetime of a session.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// RenderKey builds a cache key for markdown rendered at a given width and
// style.
func RenderKey(style string, width int, markdown string) string {
	hash := sha256.Sum256([]byte(style + "\x00" + strconv.Itoa(width) + "\x00" + markdown))
	return "spistory:render:v1:" + hex.EncodeToString(hash[:])
}
