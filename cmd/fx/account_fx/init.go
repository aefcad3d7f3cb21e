package account_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"moodlog/internal/config"
	"moodlog/internal/repositories"
	"moodlog/internal/services"
	"moodlog/internal/storage"
	mem "moodlog/pkg/memcache"
	"moodlog/pkg/utils"
)

var Module = fx.Provide(
	provideAccountService, provideAccountRepo, provideJWTManager)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL())
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	jwt *utils.JWTManager,
	denylist mem.TokenDenylist,
	store storage.ObjectStore,
	cfg *config.Config,
	log *zap.Logger,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, jwt, denylist, store, cfg.MaxUploadBytes(), cfg.Location(), log.Named("account"))
}
