package server

import (
	"context"
	"net/http"

	"scoreboard-tracker/internal/auth"
	"scoreboard-tracker/internal/constants"
)

// handleLogin sends the browser to the identity provider.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, s.entra.AuthorizeURL(), http.StatusTemporaryRedirect)
}

// handleCallback finishes the authorization-code flow: exchange the code,
// read the identity out of the ID token, issue a session cookie and bounce
// the browser back to the app.
func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		s.logger.Warn().
			Str("error", providerErr).
			Str("description", query.Get("error_description")).
			Msg("identity provider rejected the login")
		s.writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "Authentication failed",
			"detail": query.Get("error_description"),
		})
		return
	}

	code := query.Get("code")
	if code == "" {
		s.writeError(w, http.StatusBadRequest, "Missing authorization code")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.ExternalAPITimeout)
	defer cancel()

	tokens, err := s.entra.ExchangeCode(ctx, code)
	if err != nil {
		s.logger.Error().Err(err).Msg("token exchange failed")
		s.writeError(w, http.StatusInternalServerError, "Token exchange failed")
		return
	}
	if tokens.IDToken == "" {
		s.writeError(w, http.StatusInternalServerError, "No ID token in response")
		return
	}

	identity, err := auth.DecodeIDTokenClaims(tokens.IDToken)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to decode ID token")
		s.writeError(w, http.StatusInternalServerError, "Failed to decode ID token")
		return
	}

	name := identity.Name
	if name == "" {
		name = "Unknown User"
	}
	email := identity.PreferredUsername
	if email == "" {
		email = "unknown@unknown.com"
	}

	token, err := s.sessions.Issue(identity.UserID(), name, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		s.writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	s.logger.Info().Str("user_id", identity.UserID()).Str("name", name).Msg("user logged in")
	http.SetCookie(w, auth.SessionCookie(token))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleMe reports who the caller is. Authentication is optional here: an
// anonymous caller gets authenticated=false rather than a 401, so the
// frontend can probe session state without error handling.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	claims, err := s.sessions.Validate(cookie.Value)
	if err != nil {
		s.writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user_id":       claims.Subject,
		"name":          claims.Name,
		"email":         claims.Email,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.ExpiredSessionCookie())
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}
