package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tradesim/stock_trading_app/internal/adapters/database/pgsql"
	"github.com/tradesim/stock_trading_app/internal/adapters/events"
	"github.com/tradesim/stock_trading_app/internal/adapters/quotes/iex"
	"github.com/tradesim/stock_trading_app/internal/adapters/quotes/rediscache"
	portssvc "github.com/tradesim/stock_trading_app/internal/core/ports/services"
	"github.com/tradesim/stock_trading_app/internal/core/services"
	"github.com/tradesim/stock_trading_app/internal/handlers"
	"github.com/tradesim/stock_trading_app/internal/middleware"
	"github.com/tradesim/stock_trading_app/pkg/config"
	"github.com/tradesim/stock_trading_app/pkg/database"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Stock Trading Simulator API
// @version 1.0
// @description Virtual stock trading backend: accounts, quotes, trades and portfolios.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.QuoteAPIKey == "" {
		logger.Error("QUOTE_API_KEY not set")
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Quote provider, optionally fronted by a Redis cache.
	var quoteSvc portssvc.QuoteSvcFacade = iex.NewClient(cfg.QuoteAPIURL, cfg.QuoteAPIKey)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to parse REDIS_URL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		quoteSvc = rediscache.NewQuoteCache(redis.NewClient(opts), quoteSvc, rediscache.DefaultTTL)
		logger.Info("Quote cache enabled")
	}

	// Trade event stream, enabled only when a broker is configured.
	var publisher portssvc.TradeEventPublisher = services.NoopTradePublisher{}
	if cfg.KafkaBroker != "" {
		kafkaPublisher := events.NewKafkaTradePublisher([]string{cfg.KafkaBroker})
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Trade event publishing enabled", slog.String("broker", cfg.KafkaBroker))
	}

	userRepo := pgsql.NewUserRepository(dbPool)
	tradeRepo := pgsql.NewTradeRepository(dbPool)

	serviceContainer := &portssvc.ServiceContainer{
		User:      services.NewUserService(userRepo, cfg.StartingCash),
		Trading:   services.NewTradingService(tradeRepo, quoteSvc, publisher),
		Portfolio: services.NewPortfolioService(userRepo, tradeRepo, quoteSvc),
		Quote:     quoteSvc,
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.New(corsConfig))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection using the pgx stdlib driver.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	migrationDB.SetConnMaxLifetime(time.Minute)
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
