package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"character-chat/backend/ai"
	"character-chat/backend/internal/models"
	"character-chat/backend/internal/service"
	"character-chat/backend/internal/store"
	"character-chat/backend/pkg/config"
	"character-chat/backend/pkg/i18n"
	"character-chat/backend/pkg/logger"
	"character-chat/backend/pkg/router"
	"character-chat/backend/pkg/secrets"
	"character-chat/backend/shared/observability"
	"character-chat/backend/shared/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found, using environment variables")
	}

	cfg := config.New()

	logConfig := logger.DefaultConfig()
	logConfig.Level = cfg.Logging.Level
	logConfig.JSON = cfg.Logging.Format == "json"
	log := logger.New(logConfig)
	logger.SetGlobal(log)

	if err := secrets.Init(log); err != nil {
		log.Warn("Secrets manager unavailable, using environment variables", "error", err.Error())
	}

	ctx := context.Background()
	openAIKey := secrets.GetSecretWithDefault(ctx, "OPENAI_API_KEY", cfg.OpenAI.APIKey)
	stripeKey := secrets.GetSecretWithDefault(ctx, "STRIPE_SECRET_KEY", cfg.Stripe.SecretKey)

	shutdownTracing := observability.SetupTracing("character-chat")
	defer shutdownTracing()
	observability.SetupPrometheusMetrics(":9090")

	characterRepo, archive, err := setupStorage(cfg, log)
	if err != nil {
		log.Error("Failed to set up storage", "error", err.Error())
		os.Exit(1)
	}

	cache := redis.NewClient(cfg.Redis.Addr)
	if cache != nil {
		log.Info("Catalog cache enabled", "addr", cfg.Redis.Addr)
	}

	localizer, err := i18n.NewLocalizer(cfg.Language)
	if err != nil {
		log.Error("Failed to load message catalogs", "error", err.Error())
		os.Exit(1)
	}

	completion := ai.NewClientWithBaseURL(openAIKey, cfg.OpenAI.BaseURL)
	if !completion.Enabled() {
		log.Warn("No completion credentials, replies come from the dialogue pools")
	}

	characterService := service.NewCharacterService(characterRepo, cache, log)
	searchService := service.NewSearchService()
	chatService := service.NewChatService(completion, log)
	sessionService := service.NewSessionService(
		service.SessionConfig{
			TTL:               cfg.Sessions.TTL,
			MaxSessions:       cfg.Sessions.MaxSessions,
			PurgeWindow:       cfg.Sessions.PurgeWindow,
			CreditsPerSession: cfg.Credits.PerSession,
		},
		characterService,
		chatService,
		archive,
		localizer,
		log,
	)
	checkout := service.NewStripeCheckout(stripeKey, log)

	r := router.New(router.Dependencies{
		Characters: characterService,
		Search:     searchService,
		Sessions:   sessionService,
		Chat:       chatService,
		Checkout:   checkout,
		Logger:     log,
	})
	r.SetupRoutes()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r.Engine,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Server.Port, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", "error", err.Error())
	}
	log.Info("Server stopped")
}

// setupStorage picks the character repository: Postgres when a DB host is
// configured, otherwise the file-backed store. The message archive exists
// only on the Postgres path.
func setupStorage(cfg *config.Config, log *logger.Logger) (service.CharacterRepository, *service.MessageRepository, error) {
	if cfg.Database.Host == "" {
		localStore, err := store.NewLocalStore(cfg.Store.Dir, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using file-backed character store", "dir", cfg.Store.Dir)
		return localStore, nil, nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Character{}, &models.Message{}); err != nil {
		return nil, nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	log.Info("Using Postgres character store", "host", cfg.Database.Host)
	return service.NewGormCharacterRepository(db), service.NewMessageRepository(db), nil
}
