package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mnazarko/movie-store/internal/auth"
	"github.com/mnazarko/movie-store/internal/domain"
	"github.com/mnazarko/movie-store/internal/service"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// Auth verifies the Bearer access token offline and stores the user id in
// the request context.
func Auth(issuer auth.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header", http.StatusUnauthorized)
				return
			}

			userID, err := issuer.DecodeAccessToken(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireGroup restricts a route to users whose group is in allowed. It
// needs a storage lookup, so it is only applied to moderation endpoints.
func RequireGroup(accounts *service.AccountService, allowed ...domain.GroupName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := GetUserID(r.Context())
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := accounts.GetUserByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, service.ErrUserNotFound) {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			for _, name := range allowed {
				if user.Group.Name == name {
					next.ServeHTTP(w, r)
					return
				}
			}
			http.Error(w, "Forbidden", http.StatusForbidden)
		})
	}
}

func GetUserID(ctx context.Context) (uint, bool) {
	userID, ok := ctx.Value(UserIDKey).(uint)
	return userID, ok
}
