// Package id generates opaque identifiers for render jobs.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// New returns a 32-character hex job id. The sentinel fallback keeps
// callers from ever seeing an empty id if crypto/rand fails.
func New() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "bmpflow-id-unavailable"
	}
	return hex.EncodeToString(b[:])
}
