package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"scoreboard-tracker/internal/constants"

	"github.com/rs/zerolog"
)

type contextKey string

const claimsKey contextKey = "sessionClaims"

// ClaimsFromContext returns the session claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*SessionClaims, bool) {
	claims, ok := ctx.Value(claimsKey).(*SessionClaims)
	return claims, ok
}

// RequireAuth rejects requests that do not carry a valid session cookie.
func RequireAuth(sessions *Sessions, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(constants.SessionCookieName)
			if err != nil {
				writeAuthError(w, "Not authenticated")
				return
			}

			claims, err := sessions.Validate(cookie.Value)
			if err != nil {
				logger.Debug().Err(err).Msg("rejected session token")
				writeAuthError(w, "Invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
