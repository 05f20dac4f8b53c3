package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex is the document content key: identical bytes always map to the
// same cache entry.
func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}
