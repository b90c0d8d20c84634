package httpx

import (
	"context"
	"net/http"
	"strings"
)

// TokenResolver maps an opaque bearer token to the user it was issued to.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (userID string, err error)
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

func AuthMiddleware(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token", nil)
				return
			}

			userID, err := resolver.ResolveToken(r.Context(), token)
			if err != nil || userID == "" {
				JSONError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired token", nil)
				return
			}

			ctx := ContextWithUser(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// InternalSecretMiddleware guards operator endpoints with a shared secret header.
func InternalSecretMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" || r.Header.Get("X-Internal-Secret") != secret {
				JSONError(w, r, http.StatusForbidden, "FORBIDDEN", "Forbidden", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
