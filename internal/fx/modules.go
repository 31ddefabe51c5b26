package fx

import (
	"deadshot-stats/internal/config"
	"deadshot-stats/internal/database"
	"deadshot-stats/internal/logger"
	"deadshot-stats/internal/repository"
	"deadshot-stats/internal/server"
	"deadshot-stats/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewMatchRepository),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewStatsService),
	// server
	fx.Provide(server.NewServer),
)
