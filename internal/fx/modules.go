package fx

import (
	"cricket-sim/internal/config"
	"cricket-sim/internal/database"
	"cricket-sim/internal/db"
	"cricket-sim/internal/logger"
	"cricket-sim/internal/notify"
	"cricket-sim/internal/repository"
	"cricket-sim/internal/roster"
	"cricket-sim/internal/server"
	"cricket-sim/internal/service"
	"database/sql"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// ProvideLogger applies LOG_LEVEL to the base logger.
func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logger.WithLevel(logger.New(), cfg.LogLevel)
}

var Module = fx.Options(
	fx.Provide(func() (*config.Config, error) {
		return config.Load(logger.New())
	}),
	fx.Provide(ProvideLogger),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(roster.Load),
	// repos
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewStatsRepository),
	// webhook client
	fx.Provide(notify.NewWebhookClient),
	// svc
	fx.Provide(service.NewMatchService),
	fx.Provide(service.NewSeriesService),
	// server
	fx.Provide(server.NewMatchServer),
)
