package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
)

// HashCredential returns the base64 SHA-256 digest of a secret. It is
// deterministic and unsalted: the one-time-code lookup is keyed by
// (user, purpose, hash), which rules out salted schemes, and password
// storage intentionally matches the same weak scheme rather than
// diverging from the system it replaces. Do not reuse for new secrets.
func HashCredential(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// VerifyCredential recomputes the hash of plain and compares it to the
// stored value in constant time.
func VerifyCredential(storedHash, plain string) bool {
	computed := HashCredential(plain)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}
