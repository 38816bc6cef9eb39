package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ClientTokenClaims are carried by sandbox gateway client tokens.
type ClientTokenClaims struct {
	MerchantID string `json:"merchant_id"`
	jwt.RegisteredClaims
}

// GenerateClientTokenJWT signs a client token for customerID with HS256.
func GenerateClientTokenJWT(merchantID, customerID, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	jti, err := GenerateSecureRandomString(16)
	if err != nil {
		return "", err
	}
	now := time.Now()
	claims := ClientTokenClaims{
		MerchantID: merchantID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   customerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseClientTokenJWT parses a client token, validates its signature and standard claims.
func ParseClientTokenJWT(tokenString string, secretKey string) (*ClientTokenClaims, error) {
	claims := &ClientTokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}
