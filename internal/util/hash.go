package util

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SHA256Bytes returns the hex sha256 of b.
func SHA256Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Fingerprint hashes the JSON encoding of v. Values that cannot be encoded
// fingerprint to the empty string.
func Fingerprint(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return SHA256Bytes(b)
}
