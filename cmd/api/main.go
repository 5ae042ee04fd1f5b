package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/prompt-refiner-api/internal/config"
	"github.com/noah-isme/prompt-refiner-api/internal/database"
	"github.com/noah-isme/prompt-refiner-api/internal/handler"
	"github.com/noah-isme/prompt-refiner-api/internal/middleware"
	"github.com/noah-isme/prompt-refiner-api/internal/repository"
	"github.com/noah-isme/prompt-refiner-api/internal/router"
	"github.com/noah-isme/prompt-refiner-api/internal/service"
	"github.com/noah-isme/prompt-refiner-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).Level(cfg.LogLevel).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 5*time.Second)
	redisClient, err := database.ConnectRedis(connectCtx, cfg.RedisURL)
	cancelConnect()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	natsConn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to nats")
	}

	var publisher service.FeedbackPublisher = service.NewLogFeedbackPublisher(logger)
	if natsConn != nil {
		defer natsConn.Close()
		publisher = service.NewNATSFeedbackPublisher(natsConn, cfg.NATSSubject)
	}

	var generator ai.Generator
	if cfg.OpenAIAPIKey != "" {
		openAIGenerator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: cfg.OpenAITimeout,
			Logger:  logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create openai client")
		}
		generator = openAIGenerator
	} else {
		logger.Warn().Msg("OPENAI_API_KEY is not set; refinement requests will report a failed status")
	}

	validate := handler.NewValidator()

	userRepo := repository.NewCachedExistenceChecker(repository.NewUserRepository(db), redisClient, "users", cfg.LookupCacheTTL, logger)
	promptRepo := repository.NewCachedExistenceChecker(repository.NewPromptRepository(db), redisClient, "prompts", cfg.LookupCacheTTL, logger)
	feedbackRepo := repository.NewFeedbackRepository(db)

	promptValidator := service.NewPromptValidator()
	refineService := service.NewRefineService(generator, service.RefineConfig{APIKey: cfg.OpenAIAPIKey, Model: cfg.OpenAIModel}, logger)
	feedbackService := service.NewFeedbackService(userRepo, promptRepo, feedbackRepo, publisher, logger)

	promptHandler := handler.NewPromptHandler(promptValidator, refineService, validate, logger)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ErrorHandler: handler.ErrorHandler(logger),
	})

	middleware.Register(app, middleware.Config{Logger: &logger, AllowOrigins: cfg.AllowOrigins})
	router.Register(app, cfg, router.Dependencies{
		PromptHandler:   promptHandler,
		FeedbackHandler: feedbackHandler,
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("model", cfg.OpenAIModel).Msg("starting http server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
