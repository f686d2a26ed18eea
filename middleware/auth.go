package middleware

import (
	"context"
	"net/http"
	"strings"

	"greengallery/identity"

	"github.com/go-chi/render"
)

type contextKey string

const identityContextKey = contextKey("identity")

// IdentityFrom returns the signed-in identity attached to the request
// context, if any.
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(identity.Identity)
	return id, ok
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}

// AuthJWT rejects requests that do not carry a valid bearer session token.
func AuthJWT(tokens *identity.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Authorization header format must be Bearer {token}"})
				return
			}

			id, err := tokens.Parse(token)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, map[string]string{"error": "Invalid token"})
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an identity when a valid token is present and lets
// the request through as a guest otherwise. Upload routes use this so that
// unauthenticated uploads land in the guest namespace.
func OptionalAuth(tokens *identity.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token, ok := bearerToken(r); ok {
				if id, err := tokens.Parse(token); err == nil {
					ctx := context.WithValue(r.Context(), identityContextKey, id)
					r = r.WithContext(ctx)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
