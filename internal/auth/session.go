package auth

import (
	"fmt"
	"net/http"
	"time"

	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/constants"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of our own session JWT, issued after the
// identity provider has vouched for the user. Subject carries the provider's
// stable user id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Sessions issues and validates session tokens. Tokens are HS256-signed with
// the configured secret and carried in an HttpOnly cookie.
type Sessions struct {
	secret []byte
}

func NewSessions(cfg *config.Config) *Sessions {
	return &Sessions{secret: []byte(cfg.SessionSecret)}
}

func (s *Sessions) Issue(userID, name, email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.SessionTokenTTL)),
		},
		Name:  name,
		Email: email,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

func (s *Sessions) Validate(token string) (*SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	return &claims, nil
}

// SessionCookie wraps a session token for the browser. SameSite=Lax keeps
// the cookie on the top-level navigation back from the identity provider.
func SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(constants.SessionTokenTTL.Seconds()),
	}
}

// ExpiredSessionCookie overwrites the session cookie so the browser drops it.
func ExpiredSessionCookie() *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	}
}
