package schema

import (
	"crypto/rand"
	"encoding/base64"
)

// NewRowID returns a fresh, globally unique, URL-safe row identifier
// (16 base64 characters). Row IDs are assigned once at write time and join an
// item across every derived artifact.
func NewRowID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b[:])
}
