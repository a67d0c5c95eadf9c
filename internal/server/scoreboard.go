package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"

	"scoreboard-tracker/internal/auth"
	"scoreboard-tracker/internal/domain"
	"scoreboard-tracker/internal/repository"
	"scoreboard-tracker/internal/service"

	"github.com/rs/zerolog"
)

// Server exposes the scoreboard as a JSON REST API.
type Server struct {
	players  *service.PlayerService
	matches  *service.MatchService
	stats    *service.StatsService
	sessions *auth.Sessions
	entra    *auth.EntraClient
	logger   zerolog.Logger
}

func NewServer(players *service.PlayerService, matches *service.MatchService, stats *service.StatsService, sessions *auth.Sessions, entra *auth.EntraClient, logger zerolog.Logger) *Server {
	return &Server{
		players:  players,
		matches:  matches,
		stats:    stats,
		sessions: sessions,
		entra:    entra,
		logger:   logger,
	}
}

// Handler builds the route table. The auth endpoints are public; every other
// route requires a valid session cookie.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/auth/callback", s.handleCallback)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)

	authed := auth.RequireAuth(s.sessions, s.logger)
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, authed(h))
	}

	protected("GET /api/players", s.handleListPlayers)
	protected("POST /api/players", s.handleCreatePlayer)
	protected("PUT /api/players/{id}", s.handleUpdatePlayer)
	protected("DELETE /api/players/{id}", s.handleDeletePlayer)
	protected("GET /api/players/{id}/stats", s.handlePlayerStats)

	protected("GET /api/matches", s.handleListMatches)
	protected("POST /api/matches", s.handleCreateMatch)
	protected("DELETE /api/matches/{id}", s.handleDeleteMatch)

	protected("GET /api/leaderboard", s.handleLeaderboard)
	protected("GET /api/rivalries", s.handleRivalries)
	protected("GET /api/summary", s.handleSummary)

	return mux
}

// ---- Players ----

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if players == nil {
		players = []domain.Player{}
	}
	s.writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var req service.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := s.players.Create(r.Context(), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, player)
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var req service.UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := s.players.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, player)
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.players.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	bundle, err := s.stats.PlayerStats(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, bundle)
}

// ---- Matches ----

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	limit, ok := s.queryInt(w, r, "limit")
	if !ok {
		return
	}

	matches, err := s.matches.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if matches == nil {
		matches = []domain.Match{}
	}
	s.writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req service.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	match, err := s.matches.Create(r.Context(), req, claims.Subject)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleDeleteMatch(w http.ResponseWriter, r *http.Request) {
	if err := s.matches.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- Derived views ----

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	minGames, ok := s.queryInt(w, r, "min_games")
	if !ok {
		return
	}

	entries, err := s.stats.Leaderboard(r.Context(), minGames)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRivalries(w http.ResponseWriter, r *http.Request) {
	rivalries, err := s.stats.Rivalries(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Most-played rivalries first; the builder's id order settles equal
	// volumes.
	sort.SliceStable(rivalries, func(i, j int) bool {
		return rivalries[i].Player1Wins+rivalries[i].Player2Wins >
			rivalries[j].Player1Wins+rivalries[j].Player2Wins
	})
	s.writeJSON(w, http.StatusOK, rivalries)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	highlights, err := s.stats.Summary(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, highlights)
}

// ---- Helpers ----

// queryInt parses an optional non-negative integer query parameter. A bad
// value writes a 400 and returns ok = false.
func (s *Server) queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		s.writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// respondError maps domain errors onto HTTP statuses. Anything unexpected is
// logged in full and hidden behind a generic 500 body.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrPlayerNotFound), errors.Is(err, repository.ErrMatchNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, repository.ErrPlayerExists):
		s.writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
		s.writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
