package fx

import (
	"scoreboard-tracker/internal/auth"
	"scoreboard-tracker/internal/config"
	"scoreboard-tracker/internal/database"
	"scoreboard-tracker/internal/logger"
	"scoreboard-tracker/internal/repository"
	"scoreboard-tracker/internal/server"
	"scoreboard-tracker/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewMatchRepository),
	// auth
	fx.Provide(auth.NewSessions),
	fx.Provide(auth.NewEntraClient),
	// svc
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewServer),
)
