// Package hashutil provides the store's single hashing primitive: SHA-256
// formatted as "sha256:" + lowercase hex, used identically for file bytes
// and in-memory string content so the two always agree.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
)

const prefix = "sha256:"

// Bytes hashes raw bytes.
func Bytes(b []byte) string {
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}

// String hashes the UTF-8 bytes of s.
func String(s string) string {
	return Bytes([]byte(s))
}

// File hashes the bytes currently on disk at path.
func File(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path resolved from manifest/record, not raw user input
	if err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return Bytes(data), nil
}
