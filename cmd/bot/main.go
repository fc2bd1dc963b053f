package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"relaybot/internal/config"
	"relaybot/internal/gateway"
	"relaybot/internal/handler"
	"relaybot/internal/logging"
	"relaybot/internal/metrics"
	"relaybot/internal/repository"
	"relaybot/internal/repository/jsonfile"
	"relaybot/internal/repository/postgres"
	"relaybot/internal/server"
	"relaybot/internal/service"
	"relaybot/internal/transport"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// stores bundles the repositories of one storage backend
type stores struct {
	users  repository.UserRepository
	groups repository.GroupRepository
	stats  repository.StatsRepository
	closer io.Closer
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting relay bot",
		zap.String("bot_name", cfg.BotName),
		zap.String("storage", cfg.Storage.Driver),
		zap.Int("keywords", len(cfg.Keywords)),
		zap.Int("tracked_senders", len(cfg.Rules.Tracked)),
	)

	st, err := openStores(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	if st.closer != nil {
		defer st.closer.Close()
	}

	logger.Info("Storage ready")

	// Metrics endpoint
	metrics.MustRegister()
	var ops *server.Server
	if cfg.MetricsAddr != "" {
		ops = server.New(cfg.MetricsAddr, logger)
		ops.Start()
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token: cfg.BotToken,
		Poller: &tele.LongPoller{
			Timeout: 10 * time.Second,
			AllowedUpdates: []string{
				"message",
				"callback_query",
				"my_chat_member",
			},
		},
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil {
				fields = append(fields, zap.Int("update_id", c.Update().ID))
			}
			logger.Error("Update handling failed", fields...)
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))

	// Initialize services
	messenger := transport.NewMessenger(bot)
	api := gateway.NewClient(cfg.APIs, cfg.HTTPTimeout, logger)

	userService := service.NewUserService(st.users, st.groups, messenger, cfg.OperatorID, logger)
	lookupService := service.NewLookupService(api, messenger, logger)
	broadcastService := service.NewBroadcastService(st.groups, st.users, st.stats, messenger, cfg.OperatorID, cfg.BroadcastDelay, logger)
	dispatcher := service.NewDispatcher(
		service.NewFlowTracker(),
		service.NewKeywordAlerter(service.NewKeywordScanner(cfg.Keywords), messenger, cfg.OperatorID, logger),
		service.NewForwarder(cfg.Rules, messenger, logger),
		lookupService,
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize handler
	botUsername := cfg.BotUsername
	if botUsername == "" {
		botUsername = "@" + bot.Me.Username
	}
	h := handler.NewHandler(ctx, bot, handler.Options{
		BotName:     cfg.BotName,
		BotUsername: botUsername,
		OperatorID:  cfg.OperatorID,
	}, dispatcher, lookupService, broadcastService, userService, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	if ops != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Metrics server shutdown failed", zap.Error(err))
		}
	}

	logger.Info("Bot stopped gracefully")
}

// openStores selects the storage backend
func openStores(cfg *config.Config, logger *zap.Logger) (*stores, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		// Connect to database with retries
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, err
		}
		if err := runMigrations(db, logger); err != nil {
			db.Close()
			return nil, err
		}
		return &stores{
			users:  postgres.NewUserRepo(db),
			groups: postgres.NewGroupRepo(db),
			stats:  postgres.NewStatsRepo(db),
			closer: db,
		}, nil
	default:
		store, err := jsonfile.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, err
		}
		return &stores{users: store, groups: store, stats: store}, nil
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		logger.Info("Database connection established")
		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
