package session

import (
	"crypto/rsa"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

// TokenLifetime bounds both token validity and how long a revocation entry
// needs to be kept.
const TokenLifetime = 12 * time.Hour

// TokenManager issues the RS256 bearer tokens the API hands out after a
// successful login. Each token carries a unique jti so logout can revoke it
// without waiting for expiry.
type TokenManager struct {
	privateKey *rsa.PrivateKey
}

func NewTokenManager(privateKey *rsa.PrivateKey) *TokenManager {
	return &TokenManager{privateKey: privateKey}
}

type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}

func (m *TokenManager) Issue(user *domain.User) (*IssuedToken, error) {
	tokenID := uuid.NewString()
	expiresAt := time.Now().Add(TokenLifetime)

	claims := jwt.MapClaims{
		"sub":      strconv.Itoa(user.ID),
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      tokenID,
		"iat":      time.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(m.privateKey)
	if err != nil {
		return nil, err
	}

	return &IssuedToken{Token: signed, TokenID: tokenID, ExpiresAt: expiresAt}, nil
}
