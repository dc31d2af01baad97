package middleware

import (
	"context"
	"crypto/rsa"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stavrosm/city-clinic/records-service/internal/core/domain"
)

// RevocationChecker reports whether a token id was revoked by logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type AuthMiddleware struct {
	publicKey   *rsa.PublicKey
	revocations RevocationChecker
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, revocations RevocationChecker) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey:   publicKey,
		revocations: revocations,
	}
}

type contextKey string

const (
	principalKey contextKey = "principal"
	tokenIDKey   contextKey = "tokenID"
)

// ContextWithPrincipal returns a context carrying the authenticated
// principal and its token id, as RequireRole installs them.
func ContextWithPrincipal(ctx context.Context, principal *domain.User, tokenID string) context.Context {
	ctx = context.WithValue(ctx, principalKey, principal)
	return context.WithValue(ctx, tokenIDKey, tokenID)
}

// PrincipalFromContext returns the authenticated principal placed in the
// request context by RequireRole, or nil outside guarded routes.
func PrincipalFromContext(ctx context.Context) *domain.User {
	principal, _ := ctx.Value(principalKey).(*domain.User)
	return principal
}

// TokenIDFromContext returns the jti of the bearer token for the request.
func TokenIDFromContext(ctx context.Context) string {
	tokenID, _ := ctx.Value(tokenIDKey).(string)
	return tokenID
}

func (m *AuthMiddleware) RequireRole(roles []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "invalid authorization header", http.StatusUnauthorized)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		sub, _ := claims["sub"].(string)
		username, _ := claims["username"].(string)
		userRole, _ := claims["role"].(string)
		tokenID, _ := claims["jti"].(string)
		if sub == "" || username == "" || userRole == "" || tokenID == "" {
			http.Error(w, "invalid token claims", http.StatusUnauthorized)
			return
		}

		revoked, err := m.revocations.IsRevoked(r.Context(), tokenID)
		if err != nil {
			log.Printf("auth: revocation check failed for token %s: %v", tokenID, err)
			http.Error(w, "authorization unavailable", http.StatusServiceUnavailable)
			return
		}
		if revoked {
			http.Error(w, "token revoked", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		userID, _ := strconv.Atoi(sub)
		principal := &domain.User{
			ID:       userID,
			Username: username,
			Role:     domain.Role(userRole),
		}

		next(w, r.WithContext(ContextWithPrincipal(r.Context(), principal, tokenID)))
	}
}
