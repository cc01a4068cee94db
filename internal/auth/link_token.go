package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// MinLinkTokenBytes is the smallest accepted entropy for a signing link token.
const MinLinkTokenBytes = 16

// GenerateLinkToken creates a random signing link token of n bytes.
// Returns both the raw token (sent to the recipient) and its SHA-256 hash
// (the only form stored).
func GenerateLinkToken(n int) (raw string, hash string, err error) {
	if n < MinLinkTokenBytes {
		return "", "", fmt.Errorf("link token needs at least %d bytes, got %d", MinLinkTokenBytes, n)
	}

	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	hash = HashToken(raw)

	return raw, hash, nil
}

// HashToken computes the SHA-256 hash of a token and returns it as a hex string.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}

// unknownTokenHash stands in for a missing envelope so a lookup miss costs
// the same comparison as a wrong token.
var unknownTokenHash = HashToken("no-such-envelope")

// TokenMatches reports whether raw hashes to storedHash, in constant time.
// An empty storedHash is compared against a fixed dummy and never matches.
func TokenMatches(raw, storedHash string) bool {
	if storedHash == "" {
		subtle.ConstantTimeCompare([]byte(HashToken(raw)), []byte(unknownTokenHash))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(HashToken(raw)), []byte(storedHash)) == 1
}
