package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// DefaultTokenDuration is how long an issued token stays valid. Tokens are
// stateless and never revoked server side, so keep this short.
const DefaultTokenDuration = time.Hour

// Claims is the payload embedded in every issued token.
type Claims struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HMAC-signed bearer tokens. Construct one
// per process with the server secret; tests can construct their own with a
// throwaway secret.
type TokenManager struct {
	secret        []byte
	tokenDuration time.Duration
}

func NewTokenManager(secret string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secret:        []byte(secret),
		tokenDuration: tokenDuration,
	}
}

// Issue mints a signed token embedding the user's identity, valid from now
// until now plus the configured duration.
func (m *TokenManager) Issue(userId string, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserId: userId,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "fail to sign token")
	}
	return token, nil
}

// Verify parses and validates a token string. It fails on a bad signature, a
// malformed payload, an elapsed expiry, or an unexpected signing algorithm.
// No claim is trusted before the signature checks out.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
