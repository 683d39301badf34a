package auth

import (
	"context"
	"net/http"

	"github.com/rahmatd/contactbook/internal/model"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the authenticated user value.
type contextKey string

const userKey contextKey = "user"

// UserResolver resolves a session token to a user record. Implemented by
// the sqlite user repository.
type UserResolver interface {
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
}

// RequireAuth is the middleware guarding every authenticated route.
//
// The client sends the raw token in the Authorization header (no "Bearer"
// prefix). The middleware performs a single read-only lookup of the token;
// a missing header, empty token, or unknown token all terminate the request
// with the same 401 body before any handler runs. On success the resolved
// user is attached to the request context for downstream handlers.
func RequireAuth(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			if token == "" {
				writeUnauthorized(w)
				return
			}

			user, err := users.GetUserByToken(r.Context(), token)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user attached by RequireAuth.
// Returns (nil, false) on routes that never went through the middleware.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"errors":{"message":["Unauthorized"]}}`))
}
