package ai_fx

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"moodlog/internal/config"
	"moodlog/internal/services"
	"moodlog/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerativeClient,
	ProvideMoodService)

// aiSettings picks the key and model of the configured provider.
type aiSettings struct {
	Provider string
	APIKey   string
	Model    string
}

func settingsFor(cfg *config.Config) aiSettings {
	provider := strings.ToLower(cfg.AIProvider)
	if provider == "openai" {
		return aiSettings{Provider: provider, APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}
	}
	return aiSettings{Provider: provider, APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel}
}

// ProvideGenerativeClient creates the AI client for the configured provider.
func ProvideGenerativeClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (utils.GenerativeClient, error) {
	s := settingsFor(cfg)
	if s.APIKey == "" {
		return nil, errors.New("an API key is required for AI provider " + s.Provider)
	}

	log.Info("initializing AI client", zap.String("provider", s.Provider), zap.String("model", s.Model))
	client, err := utils.NewGenerativeClient(s.Provider, s.APIKey, s.Model)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func ProvideMoodService(ai utils.GenerativeClient, cfg *config.Config, log *zap.Logger) services.MoodServiceInterface {
	return services.NewMoodService(ai, cfg.AITimeout(), log.Named("mood"))
}
