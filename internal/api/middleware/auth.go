package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/DivyanshSaharan/ContestTrack/internal/api/auth"
)

type ContextKey string

const UserContextKey ContextKey = "user"

// JWTAuthMiddleware rejects requests without a valid bearer token and puts
// the token claims into the request context.
func JWTAuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondUnauthorized(w, "Missing authorization header")
				return
			}

			tokenString, err := auth.ExtractTokenFromBearer(authHeader)
			if err != nil {
				respondUnauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtManager.ValidateToken(tokenString)
			if err != nil {
				respondUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated user's claims, or nil.
func GetUserFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
