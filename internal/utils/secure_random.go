package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/lcodev/ecom_backend/internal/core/domain"
)

// GenerateSecureRandomString generates a cryptographically secure random string of the specified byte length,
// then hex encodes it. For example, lengthInBytes=32 will result in a 64-character hex string.
func GenerateSecureRandomString(lengthInBytes int) (string, error) {
	if lengthInBytes <= 0 {
		return "", fmt.Errorf("lengthInBytes must be positive")
	}
	b := make([]byte, lengthInBytes)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateFromAlphabet draws length characters uniformly from alphabet.
func GenerateFromAlphabet(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}
	if alphabet == "" {
		return "", fmt.Errorf("alphabet must not be empty")
	}
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

// SessionTokenGenerator implements ports.TokenGenerator.
type SessionTokenGenerator struct{}

// NewSessionToken returns a token of domain.SessionTokenLength characters
// drawn from domain.SessionTokenAlphabet. It is never the sentinel.
func (SessionTokenGenerator) NewSessionToken() (string, error) {
	return GenerateFromAlphabet(domain.SessionTokenLength, domain.SessionTokenAlphabet)
}
