package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"moodlog/internal/config"
)

var Module = fx.Provide(
	provideConfig, provideLogger)

func provideConfig() (*config.Config, error) {
	return config.LoadConfig()
}

// provideLogger also replaces zap's global logger, which the response helpers use.
func provideLogger(cfg *config.Config) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if cfg.IsProduction() {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(log)
	return log, nil
}
