package id

import (
	"crypto/rand"
	"encoding/hex"
)

// New generates a 24-character hex entity id (12 random bytes). Matches the
// identifier format the frontend already stores, so migrated records and fresh
// ones validate the same way.
func New() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		panic("id: rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// NewObjectKey generates a 64-character hex object-storage key (32 random bytes).
func NewObjectKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("id: rand.Read failed: " + err.Error())
	}
	return hex.EncodeToString(b)
}

// Valid reports whether s is a well-formed 24-character hex entity id.
// Handlers call this before any store lookup; a malformed id is a client
// error, never a query.
func Valid(s string) bool {
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}
