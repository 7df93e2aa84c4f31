package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashTextKey returns a stable hex identifier for a text blob, used as a
// cache key so large documents are not compared byte by byte.
func HashTextKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
