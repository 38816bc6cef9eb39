package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/lcodev/ecom_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionTokenGenerator(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		tok, err := SessionTokenGenerator{}.NewSessionToken()
		require.NoError(t, err)
		assert.Len(t, tok, domain.SessionTokenLength)
		assert.NotEqual(t, domain.SentinelToken, tok)
		for _, c := range tok {
			assert.True(t, strings.ContainsRune(domain.SessionTokenAlphabet, c), "unexpected char %q", c)
		}
		seen[tok] = true
	}
	assert.Len(t, seen, 200)
}

func TestGenerateFromAlphabetRejectsBadInput(t *testing.T) {
	_, err := GenerateFromAlphabet(0, "abc")
	assert.Error(t, err)
	_, err = GenerateFromAlphabet(5, "")
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	first, err := h.Hash("xyz")
	require.NoError(t, err)
	second, err := h.Hash("xyz")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "hashes must be salted per record")
	assert.True(t, h.Verify("xyz", first))
	assert.False(t, h.Verify("xy", first))
}

func TestClientTokenRoundTrip(t *testing.T) {
	tok, err := GenerateClientTokenJWT("merchant", "user-1", "secret", time.Minute, "sandbox")
	require.NoError(t, err)

	claims, err := ParseClientTokenJWT(tok, "secret")
	require.NoError(t, err)
	assert.Equal(t, "merchant", claims.MerchantID)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Len(t, claims.ID, 32)

	again, err := GenerateClientTokenJWT("merchant", "user-1", "secret", time.Minute, "sandbox")
	require.NoError(t, err)
	assert.NotEqual(t, tok, again)

	_, err = ParseClientTokenJWT(tok, "other")
	assert.Error(t, err)
}

func TestPosthogWrapperWithoutClientIsNoop(t *testing.T) {
	var w PosthogClientWrapper
	assert.False(t, w.IsInitialized())
	w.Track("u", EventOrderPlaced, nil)
	w.Close()
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "9.90", FormatAmount(decimal.RequireFromString("9.9")))
	assert.Equal(t, "12.35", FormatAmount(decimal.RequireFromString("12.345")))
	assert.Equal(t, "0.00", FormatAmount(decimal.Zero))
	assert.Equal(t, "3", FormatWithPrecision(decimal.RequireFromString("3.4"), 0))
}
