package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// NewOpaqueToken returns a URL-safe random string for activation and
// password-reset tokens. 32 bytes of entropy before encoding.
func NewOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
