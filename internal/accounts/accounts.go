package accounts

import (
	"fmt"

	accounthttp "memberhub/internal/accounts/adapter/http"
	"memberhub/internal/accounts/adapter/persistence/mongodb"
	"memberhub/internal/accounts/adapter/persistence/redisstore"
	"memberhub/internal/accounts/adapter/security"
	"memberhub/internal/accounts/config"
	"memberhub/internal/accounts/domain/repository"
	"memberhub/internal/accounts/usecase"
	"memberhub/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountsModule represents the complete accounts module: user directory,
// session store, credential hashing and the page routes.
type AccountsModule struct {
	users    repository.UserRepository
	sessions repository.SessionStore
	tokenSvc repository.SessionTokenService
	usecase  usecase.AccountUsecaseInterface
	handler  *accounthttp.AccountHTTPHandler
	config   *config.Config
	logger   logger.Logger
}

// NewAccountsModule creates a new accounts module instance
func NewAccountsModule(db *mongo.Database, redisClient *redis.Client, cfg *config.Config, log logger.Logger) (*AccountsModule, error) {
	users, err := mongodb.NewMongoUserRepository(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	sessions, err := redisstore.NewRedisSessionStore(redisClient, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create session store: %w", err)
	}

	tokenSvc, err := security.NewSessionTokenService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create session token service: %w", err)
	}

	accountUsecase := usecase.NewAccountUsecase(users, sessions, tokenSvc, security.NewBcryptHasher(), cfg)

	handler := accounthttp.NewAccountHTTPHandler(
		accountUsecase,
		log,
		cfg.CookieName,
		cfg.CookiePath,
		cfg.CookieDomain,
		int(cfg.SessionTTL.Seconds()),
		cfg.CookieSecure,
		cfg.CookieHTTPOnly,
		cfg.CookieSameSite,
	)

	return &AccountsModule{
		users:    users,
		sessions: sessions,
		tokenSvc: tokenSvc,
		usecase:  accountUsecase,
		handler:  handler,
		config:   cfg,
		logger:   log,
	}, nil
}

// RegisterRoutes registers the page routes with the provided router
func (am *AccountsModule) RegisterRoutes(router fiber.Router) {
	am.handler.SetupRoutesWithMiddleware(router, am.GetMiddleware())
}

// GetUsecase returns the account usecase for external access
func (am *AccountsModule) GetUsecase() usecase.AccountUsecaseInterface {
	return am.usecase
}

// GetMiddleware returns the auth middleware
func (am *AccountsModule) GetMiddleware() *accounthttp.AuthMiddleware {
	return accounthttp.NewAuthMiddleware(am.usecase, am.config.CookieName, am.logger)
}
