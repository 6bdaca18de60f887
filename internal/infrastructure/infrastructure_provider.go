package infrastructure

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"todo-server/internal/config"
	"todo-server/internal/domain/chat"
	"todo-server/internal/infrastructure/auth"
	"todo-server/internal/infrastructure/completion"
	"todo-server/internal/infrastructure/database"
	"todo-server/internal/infrastructure/database/repository"
	"todo-server/internal/infrastructure/database/transaction"
	"todo-server/internal/infrastructure/logger"
)

// ProvideConfig loads and provides the application configuration
func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

// ProvideLogger builds the logger from configuration.
func ProvideLogger(cfg *config.Config) (zerolog.Logger, error) {
	return logger.New(cfg.LogLevel, cfg.LogFormat)
}

// ProvideDatabase opens the database connection and runs migrations when
// AUTO_MIGRATE is enabled.
func ProvideDatabase(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		log.Info().Msg("Running database migrations...")
		if err := database.Migration(db); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return nil, err
		}
		log.Info().Msg("Database migrations completed successfully")
	}

	return db, nil
}

// ProvideTransactionDatabase provides a transaction database wrapper
func ProvideTransactionDatabase(db *gorm.DB) *transaction.Database {
	return transaction.NewDatabase(db)
}

// ProvideTokenService builds the access token signer/validator.
func ProvideTokenService(cfg *config.Config) (*auth.TokenService, error) {
	return auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)
}

// ProvideCompletionAdapter selects the configured completion backend.
func ProvideCompletionAdapter(cfg *config.Config, log zerolog.Logger) (chat.Adapter, error) {
	return completion.NewAdapter(cfg, log)
}

// Infrastructure bundles shared infrastructure dependencies.
type Infrastructure struct {
	DB           *gorm.DB
	TokenService *auth.TokenService
	Logger       zerolog.Logger
}

// NewInfrastructure creates a new infrastructure instance
func NewInfrastructure(
	db *gorm.DB,
	tokenService *auth.TokenService,
	logger zerolog.Logger,
) *Infrastructure {
	return &Infrastructure{
		DB:           db,
		TokenService: tokenService,
		Logger:       logger,
	}
}

// Ping verifies database connectivity, used by the readiness probe.
func (i *Infrastructure) Ping(ctx context.Context) error {
	sqlDB, err := i.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// InfrastructureProvider provides all infrastructure dependencies
var InfrastructureProvider = wire.NewSet(
	// Config
	ProvideConfig,

	// Logger
	ProvideLogger,

	// Database
	ProvideDatabase,
	ProvideTransactionDatabase,

	// Repositories
	repository.RepositoryProvider,

	// Auth tokens
	ProvideTokenService,

	// Completion backend
	ProvideCompletionAdapter,

	// Infrastructure struct
	NewInfrastructure,
)
