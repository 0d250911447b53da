// Package share implements share token issuance and resolution for
// time-limited public property access.
package share

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes gives 256 bits of entropy, encoded to 43 URL-safe characters.
const tokenBytes = 32

// GenerateToken returns a cryptographically random, URL-safe share token.
// The token is the only public credential for a share and must not be
// derivable from any record field.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
