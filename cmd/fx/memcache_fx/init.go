package memcache_fx

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moodlog/internal/config"
	"moodlog/internal/infra"
	"moodlog/internal/repositories"
	mem "moodlog/pkg/memcache"
)

var Module = fx.Provide(
	provideRedisClient, provideSuggestionStore, provideTokenDenylist)

// provideRedisClient returns nil when redis is not configured or unreachable.
func provideRedisClient(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *redis.Client {
	client := infra.InitRedis(cfg.RedisURL, log)
	if client != nil {
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return client.Close()
			},
		})
	}
	return client
}

func provideSuggestionStore(cfg *config.Config, db *gorm.DB, client *redis.Client, log *zap.Logger) mem.SuggestionStore {
	switch strings.ToLower(cfg.SuggestionCacheBackend) {
	case "redis":
		if client != nil {
			return mem.NewRedisSuggestionStore(client)
		}
		log.Warn("redis unavailable, suggestion cache falls back to the account record")
		return repositories.NewAccountSuggestionStore(db)
	case "memory":
		return mem.NewMemorySuggestionStore()
	default:
		return repositories.NewAccountSuggestionStore(db)
	}
}

func provideTokenDenylist(client *redis.Client) mem.TokenDenylist {
	if client != nil {
		return mem.NewRedisTokenDenylist(client)
	}
	return mem.NewMemoryTokenDenylist()
}
